package x

// Convenience accessors over GetProperty for the inter-client conventions
// the manager consults. Conversion failures and absent properties both read
// as "not set"; they are never fatal.

// WMName returns the client's WM_NAME, or "" when unset.
func WMName(c Conn, win Xid) string {
	prop, err := c.GetProperty(win, "WM_NAME")
	if err != nil || prop == nil {
		return ""
	}
	switch p := prop.(type) {
	case PropString:
		if len(p) > 0 {
			return p[0]
		}
	case PropUTF8String:
		if len(p) > 0 {
			return p[0]
		}
	}
	return ""
}

// WMClass returns the client's (instance, class) pair from WM_CLASS.
func WMClass(c Conn, win Xid) (string, string) {
	prop, err := c.GetProperty(win, "WM_CLASS")
	if err != nil || prop == nil {
		return "", ""
	}
	if p, ok := prop.(PropString); ok && len(p) >= 2 {
		return p[0], p[1]
	}
	return "", ""
}

// WMHintsOf returns the client's WM_HINTS record, or nil when absent or
// malformed.
func WMHintsOf(c Conn, win Xid) *WmHints {
	prop, err := c.GetProperty(win, "WM_HINTS")
	if err != nil || prop == nil {
		return nil
	}
	if p, ok := prop.(PropWMHints); ok {
		h := WmHints(p)
		return &h
	}
	return nil
}

// SizeHintsOf returns the client's WM_NORMAL_HINTS record, or nil when
// absent or malformed.
func SizeHintsOf(c Conn, win Xid) *WmSizeHints {
	prop, err := c.GetProperty(win, "WM_NORMAL_HINTS")
	if err != nil || prop == nil {
		return nil
	}
	if p, ok := prop.(PropWMSizeHints); ok {
		h := WmSizeHints(p)
		return &h
	}
	return nil
}

// TransientFor returns the window this client is transient for, if any.
func TransientFor(c Conn, win Xid) (Xid, bool) {
	prop, err := c.GetProperty(win, "WM_TRANSIENT_FOR")
	if err != nil || prop == nil {
		return None, false
	}
	if p, ok := prop.(PropWindows); ok && len(p) > 0 && p[0] != None {
		return p[0], true
	}
	return None, false
}

// IsUrgent reports the urgency bit of the client's WM_HINTS.
func IsUrgent(c Conn, win Xid) bool {
	if h := WMHintsOf(c, win); h != nil {
		return h.Urgent()
	}
	return false
}
