package schedule

import "fmt"

// parseHM converts a zero-padded "HH:MM" string to minutes since
// midnight. The second return is false for malformed input.
func parseHM(hm string) (int, bool) {
	if len(hm) != 5 || hm[2] != ':' {
		return 0, false
	}
	h := int(hm[0]-'0')*10 + int(hm[1]-'0')
	m := int(hm[3]-'0')*10 + int(hm[4]-'0')
	if hm[0] < '0' || hm[0] > '9' || hm[1] < '0' || hm[1] > '9' ||
		hm[3] < '0' || hm[3] > '9' || hm[4] < '0' || hm[4] > '9' {
		return 0, false
	}
	if h > 23 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}

func formatHM(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
