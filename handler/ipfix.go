package handler

import "strings"

// normalizeDeviceID turns whatever the operator pasted into host[:port].
// Anything starting at the first "192" is taken as a LAN address as is;
// otherwise the value is lower-cased and stripped of its scheme.
func normalizeDeviceID(raw string) string {
	if i := strings.Index(raw, "192"); i != -1 {
		return raw[i:]
	}
	id := strings.ToLower(raw)
	id = strings.ReplaceAll(id, "https://", "")
	return strings.ReplaceAll(id, "http://", "")
}
