package filesystem

import (
	"fmt"
	"os/user"
	"strconv"
)

// UserName returns the login name for uid, or the decimal id when the
// account database has no entry
func UserName(uid int) string {
	if u, err := user.LookupId(strconv.Itoa(uid)); err == nil {
		return u.Username
	}
	return strconv.Itoa(uid)
}

// GroupName returns the group name for gid, or the decimal id when the
// group database has no entry
func GroupName(gid int) string {
	if g, err := user.LookupGroupId(strconv.Itoa(gid)); err == nil {
		return g.Name
	}
	return strconv.Itoa(gid)
}

// LookupUID resolves a user name to its uid. Names that are not known but
// parse as a decimal number are taken as the id itself.
func LookupUID(name string) (int, error) {
	if u, err := user.Lookup(name); err == nil {
		return strconv.Atoi(u.Uid)
	}
	if id, err := strconv.Atoi(name); err == nil && id >= 0 {
		return id, nil
	}
	return -1, fmt.Errorf("unknown user %q", name)
}

// LookupGID resolves a group name to its gid, with the same numeric
// fallback as LookupUID
func LookupGID(name string) (int, error) {
	if g, err := user.LookupGroup(name); err == nil {
		return strconv.Atoi(g.Gid)
	}
	if id, err := strconv.Atoi(name); err == nil && id >= 0 {
		return id, nil
	}
	return -1, fmt.Errorf("unknown group %q", name)
}
