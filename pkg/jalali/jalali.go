// Package jalali formats timestamps on the Solar Hijri calendar used by the
// warehouse front-end.
package jalali

import (
	"time"

	ptime "github.com/yaa110/go-persian-calendar"
)

// Layouts in go-persian-calendar notation.
const (
	MinuteLayout = "yyyy/MM/dd HH:mm"
	SecondLayout = "yyyy/MM/dd HH:mm:ss"
)

// Minute renders t as YYYY/MM/DD HH:MM.
func Minute(t time.Time) string {
	return ptime.New(t).Format(MinuteLayout)
}

// Second renders t as YYYY/MM/DD HH:MM:SS.
func Second(t time.Time) string {
	return ptime.New(t).Format(SecondLayout)
}
