package ui

// Type characters for ModeString
const (
	TypeFile      = '-'
	TypeDirectory = 'd'
	TypeSymlink   = 'l'
)

// ModeString renders permission bits like ls -l, e.g. "-rwSrw----" for a
// setuid file without owner execute
func ModeString(typ byte, mode uint32) string {
	const rwx = "rwxrwxrwx"
	out := make([]byte, 10)
	out[0] = typ
	for i := 0; i < 9; i++ {
		if mode&(1<<uint(8-i)) != 0 {
			out[i+1] = rwx[i]
		} else {
			out[i+1] = '-'
		}
	}
	special := []struct {
		bit      uint32
		pos      int
		set, off byte
	}{
		{0o4000, 3, 's', 'S'},
		{0o2000, 6, 's', 'S'},
		{0o1000, 9, 't', 'T'},
	}
	for _, s := range special {
		if mode&s.bit == 0 {
			continue
		}
		if out[s.pos] == 'x' {
			out[s.pos] = s.set
		} else {
			out[s.pos] = s.off
		}
	}
	return string(out)
}
