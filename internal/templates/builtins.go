package templates

import "time"

// addBuiltinData publishes the build date under "Date" and "DateTime" unless
// the caller already set those keys.
func addBuiltinData(common map[string]any, now time.Time) {
	now = now.UTC()
	if _, ok := common["Date"]; !ok {
		common["Date"] = now.Format("2006-01-02")
	}
	if _, ok := common["DateTime"]; !ok {
		common["DateTime"] = now.Format(time.RFC3339)
	}
}
