package packed

import "strings"

// Native dialogs report Windows paths no matter which platform decodes
// them, so path/filepath cannot be used here.

func separator(p string) string {
	if strings.ContainsRune(p, '\\') || volumeLen(p) > 0 {
		return `\`
	}
	return "/"
}

func isSep(c byte) bool {
	return c == '\\' || c == '/'
}

// volumeLen returns the length of a leading drive letter such as "C:" or
// of a UNC share such as `\\server\share`.
func volumeLen(p string) int {
	if len(p) >= 2 && p[1] == ':' {
		c := p[0] | 0x20
		if c >= 'a' && c <= 'z' {
			return 2
		}
	}
	if len(p) < 5 || !isSep(p[0]) || !isSep(p[1]) || isSep(p[2]) {
		return 0
	}
	server := strings.IndexAny(p[2:], `\/`)
	if server < 0 {
		return 0
	}
	share := 2 + server + 1
	end := strings.IndexAny(p[share:], `\/`)
	switch {
	case end == 0:
		return 0
	case end < 0:
		return len(p)
	}
	return share + end
}

// Join appends name to dir with a single separator.
func Join(dir, name string) string {
	if dir == "" {
		return name
	}
	if isSep(dir[len(dir)-1]) {
		return dir + name
	}
	return dir + separator(dir) + name
}

// Parent returns the directory containing p, or "" when p is a root or has
// no directory component.
func Parent(p string) string {
	vol := volumeLen(p)
	rest := p[vol:]
	for len(rest) > 1 && isSep(rest[len(rest)-1]) {
		rest = rest[:len(rest)-1]
	}
	i := strings.LastIndexAny(rest, `\/`)
	switch {
	case i < 0:
		return ""
	case i == len(rest)-1:
		// rest is a bare separator, p is a root
		return ""
	case i == 0:
		return p[:vol+1]
	}
	return p[:vol+i]
}
