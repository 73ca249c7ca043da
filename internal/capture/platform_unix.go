//go:build linux || freebsd || openbsd || netbsd || dragonfly

package capture

import (
	"bytes"
	"fmt"
	"image"
	"os"
	"strings"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/randr"
	"github.com/jezek/xgb/xproto"
)

type x11Backend struct{}

func newBackend() platformBackend {
	return x11Backend{}
}

func runningOnWayland() bool {
	sessionType := strings.ToLower(strings.TrimSpace(os.Getenv("XDG_SESSION_TYPE")))
	if sessionType == "wayland" {
		return true
	}
	return os.Getenv("WAYLAND_DISPLAY") != ""
}

// connect opens a short-lived connection and resolves the default screen.
// Callers close the connection.
func connect() (*xgb.Conn, *xproto.ScreenInfo, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, nil, fmt.Errorf("connect X server: %w", err)
	}
	setup := xproto.Setup(conn)
	if setup == nil {
		conn.Close()
		return nil, nil, fmt.Errorf("xproto setup unavailable")
	}
	screen := setup.DefaultScreen(conn)
	if screen == nil {
		conn.Close()
		return nil, nil, fmt.Errorf("xproto screen unavailable")
	}
	return conn, screen, nil
}

func (x11Backend) ListMonitors() ([]MonitorInfo, error) {
	conn, screen, err := connect()
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	monitors, err := fetchMonitors(conn, screen.Root)
	if err != nil {
		return nil, err
	}
	if len(monitors) == 0 {
		return nil, errNoMonitors
	}
	return monitors, nil
}

func (x11Backend) ListWindows() ([]WindowInfo, error) {
	conn, screen, err := connect()
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	activeID, _ := fetchActiveWindow(conn, screen.Root)
	windows, err := fetchWindows(conn, screen.Root, activeID)
	if err != nil {
		return nil, err
	}
	if len(windows) == 0 {
		return nil, errNoWindows
	}
	return windows, nil
}

func (x11Backend) PointerPosition() (image.Point, error) {
	conn, screen, err := connect()
	if err != nil {
		return image.Point{}, err
	}
	defer conn.Close()

	reply, err := xproto.QueryPointer(conn, screen.Root).Reply()
	if err != nil {
		return image.Point{}, fmt.Errorf("query pointer: %w", err)
	}
	return image.Pt(int(reply.RootX), int(reply.RootY)), nil
}

func fetchMonitors(conn *xgb.Conn, root xproto.Window) ([]MonitorInfo, error) {
	if err := randr.Init(conn); err != nil {
		return nil, fmt.Errorf("init randr: %w", err)
	}
	res, err := randr.GetScreenResources(conn, root).Reply()
	if err != nil {
		return nil, fmt.Errorf("randr screen resources: %w", err)
	}
	primaryOutput := randr.Output(0)
	if primary, err := randr.GetOutputPrimary(conn, root).Reply(); err == nil {
		primaryOutput = primary.Output
	}
	var monitors []MonitorInfo
	for _, output := range res.Outputs {
		info, err := randr.GetOutputInfo(conn, output, res.ConfigTimestamp).Reply()
		if err != nil || info.Connection != randr.ConnectionConnected || info.Crtc == 0 {
			continue
		}
		crtc, err := randr.GetCrtcInfo(conn, info.Crtc, res.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}
		x, y := int(crtc.X), int(crtc.Y)
		monitors = append(monitors, MonitorInfo{
			Index:   len(monitors),
			Name:    strings.TrimSpace(string(info.Name)),
			Rect:    image.Rect(x, y, x+int(crtc.Width), y+int(crtc.Height)),
			Primary: output == primaryOutput,
		})
	}
	return monitors, nil
}

func fetchActiveWindow(conn *xgb.Conn, root xproto.Window) (uint32, error) {
	atom, err := internAtom(conn, "_NET_ACTIVE_WINDOW")
	if err != nil {
		return 0, err
	}
	reply, err := xproto.GetProperty(conn, false, root, atom, xproto.AtomWindow, 0, 1).Reply()
	if err != nil {
		return 0, err
	}
	if reply.Format != 32 || reply.ValueLen == 0 {
		return 0, fmt.Errorf("active window unavailable")
	}
	return xgb.Get32(reply.Value), nil
}

// clientList reads the managed windows bottom to top. Window managers that
// do not publish the stacking list fall back to the mapping order.
func clientList(conn *xgb.Conn, root xproto.Window) ([]xproto.Window, error) {
	var reply *xproto.GetPropertyReply
	for _, name := range []string{"_NET_CLIENT_LIST_STACKING", "_NET_CLIENT_LIST"} {
		atom, err := internAtom(conn, name)
		if err != nil {
			return nil, err
		}
		reply, err = xproto.GetProperty(conn, false, root, atom, xproto.AtomWindow, 0, 1<<16).Reply()
		if err == nil && reply.Format == 32 && reply.ValueLen > 0 {
			break
		}
		reply = nil
	}
	if reply == nil {
		return nil, nil
	}
	ids := make([]xproto.Window, 0, reply.ValueLen)
	for i := 0; i < int(reply.ValueLen); i++ {
		ids = append(ids, xproto.Window(xgb.Get32(reply.Value[i*4:])))
	}
	return ids, nil
}

func fetchWindows(conn *xgb.Conn, root xproto.Window, activeID uint32) ([]WindowInfo, error) {
	ids, err := clientList(conn, root)
	if err != nil {
		return nil, err
	}
	windows := make([]WindowInfo, 0, len(ids))
	for i := len(ids) - 1; i >= 0; i-- {
		info, err := describeWindow(conn, root, ids[i])
		if err != nil {
			continue
		}
		info.Index = len(windows)
		info.Active = info.ID == activeID
		windows = append(windows, info)
	}
	return windows, nil
}

func describeWindow(conn *xgb.Conn, root xproto.Window, win xproto.Window) (WindowInfo, error) {
	rect, err := windowRect(conn, root, win)
	if err != nil {
		return WindowInfo{}, err
	}
	viewable := false
	if attrs, err := xproto.GetWindowAttributes(conn, win).Reply(); err == nil {
		viewable = attrs.MapState == xproto.MapStateViewable
	}
	title := readProperty(conn, win, "_NET_WM_NAME", "UTF8_STRING")
	if title == "" {
		title = readProperty(conn, win, "WM_NAME", "")
	}
	class, instance := readClass(conn, win)
	return WindowInfo{
		ID:       uint32(win),
		Title:    title,
		Class:    class,
		Instance: instance,
		Rect:     rect,
		Viewable: viewable,
	}, nil
}

func windowRect(conn *xgb.Conn, root xproto.Window, win xproto.Window) (image.Rectangle, error) {
	geo, err := xproto.GetGeometry(conn, xproto.Drawable(win)).Reply()
	if err != nil {
		return image.Rectangle{}, err
	}
	trans, err := xproto.TranslateCoordinates(conn, win, root, 0, 0).Reply()
	if err != nil {
		return image.Rectangle{}, err
	}
	bw := int(geo.BorderWidth)
	x := int(trans.DstX) - bw
	y := int(trans.DstY) - bw
	return image.Rect(x, y, x+int(geo.Width)+bw*2, y+int(geo.Height)+bw*2), nil
}

func internAtom(conn *xgb.Conn, name string) (xproto.Atom, error) {
	reply, err := xproto.InternAtom(conn, true, uint16(len(name)), name).Reply()
	if err != nil {
		return 0, err
	}
	return reply.Atom, nil
}

// readProperty reads a text property. An empty typeName means STRING.
func readProperty(conn *xgb.Conn, win xproto.Window, name, typeName string) string {
	atom, err := internAtom(conn, name)
	if err != nil {
		return ""
	}
	propType := xproto.Atom(xproto.AtomString)
	if typeName != "" {
		if propType, err = internAtom(conn, typeName); err != nil {
			return ""
		}
	}
	reply, err := xproto.GetProperty(conn, false, win, atom, propType, 0, 1<<16).Reply()
	if err != nil || reply.ValueLen == 0 {
		return ""
	}
	return strings.TrimRight(string(reply.Value), "\x00")
}

func readClass(conn *xgb.Conn, win xproto.Window) (class, instance string) {
	raw := readProperty(conn, win, "WM_CLASS", "")
	var vals []string
	for _, p := range bytes.Split([]byte(raw), []byte{0}) {
		if len(p) > 0 {
			vals = append(vals, string(p))
		}
	}
	switch len(vals) {
	case 0:
		return "", ""
	case 1:
		return vals[0], vals[0]
	default:
		return vals[1], vals[0]
	}
}
