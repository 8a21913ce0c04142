// file: internals/helpers/dbtime/location.go
package dbtime

import (
	"os"
	"strings"
	"sync"
	"time"
)

var (
	locOnce sync.Once
	loc     *time.Location
)

// AcademyLocation: timezone operasional akademi (env ACADEMY_TIMEZONE,
// default Asia/Jakarta). Seluruh tanggal agenda & proyeksi dibaca pada
// zona ini, bukan zona server.
func AcademyLocation() *time.Location {
	locOnce.Do(func() {
		tz := strings.TrimSpace(os.Getenv("ACADEMY_TIMEZONE"))
		if tz == "" {
			tz = "Asia/Jakarta"
		}
		l, err := time.LoadLocation(tz)
		if err != nil {
			l = time.Local
		}
		loc = l
	})
	return loc
}

// NowInAcademy: "sekarang" pada timezone akademi
func NowInAcademy() time.Time {
	return time.Now().In(AcademyLocation())
}

// ParseDateInAcademy: parse "YYYY-MM-DD" pada timezone akademi
func ParseDateInAcademy(s string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", s, AcademyLocation())
}
