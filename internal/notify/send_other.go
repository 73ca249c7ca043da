//go:build !linux && !darwin

package notify

func send(Message) error { return nil }
