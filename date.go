package strictjson

import (
	"fmt"
	"time"
)

// FormatDate renders t in UTC as YYYY-MM-DDTHH:mm:ss.sssZ. Years outside
// 0..9999 use the expanded six-digit form with an explicit sign.
func FormatDate(t time.Time) string {
	t = t.UTC()
	var year string
	switch y := t.Year(); {
	case y >= 0 && y <= 9999:
		year = fmt.Sprintf("%04d", y)
	case y < 0:
		year = fmt.Sprintf("-%06d", -y)
	default:
		year = fmt.Sprintf("+%06d", y)
	}
	return year + t.Format("-01-02T15:04:05.000Z")
}
