// file: internals/helpers/cachebox/cachebox.go
//
// Cache baca lokal untuk koleksi utama (students, groups, schedules, sessions).
// Kontrak: write-invalidate — setiap operasi tulis pada sebuah koleksi WAJIB
// memanggil Invalidate/InvalidatePrefix untuk key koleksi tersebut sebelum
// balikan sukses ke caller. Pembaca boleh dapat data basi selama TTL; jalur
// yang butuh data segar (mis. finalize kehadiran) membaca langsung ke DB.
package cachebox

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

const (
	KeyStudents  = "students"
	KeyGroups    = "groups"
	KeySchedules = "schedules"

	// sesi dicache per tanggal: "sessions:2025-09-01"
	KeySessionsPrefix = "sessions:"
)

type Box struct {
	c *gocache.Cache
}

func New(ttl time.Duration) *Box {
	return &Box{c: gocache.New(ttl, 2*ttl)}
}

// Default: satu box per proses, cukup untuk pola single-instance.
var Default = New(5 * time.Minute)

func (b *Box) Get(key string) (any, bool) {
	return b.c.Get(key)
}

func (b *Box) Set(key string, v any) {
	b.c.SetDefault(key, v)
}

func (b *Box) Invalidate(keys ...string) {
	for _, k := range keys {
		b.c.Delete(k)
	}
}

// InvalidatePrefix: buang semua entri dengan prefix tertentu
// (dipakai projector/finalizer karena satu rule menyentuh banyak tanggal).
func (b *Box) InvalidatePrefix(prefix string) {
	for k := range b.c.Items() {
		if len(k) >= len(prefix) && k[:len(prefix)] == prefix {
			b.c.Delete(k)
		}
	}
}

// DayKey: key sesi untuk satu tanggal
func DayKey(d time.Time) string {
	return KeySessionsPrefix + d.Format("2006-01-02")
}
