// Identity resolution against the host's user and group databases.
//
// Lookup failures are routine here - uids in old job records may no longer
// exist - so every method degrades to a fallback value instead of failing.

package ident

import (
	"os/user"
	"strconv"
)

// SystemResolver implements joblog.IdentityResolver with os/user.
type SystemResolver struct{}

func (SystemResolver) UserName(uid int64) string {
	u, err := user.LookupId(strconv.FormatInt(uid, 10))
	if err != nil {
		return strconv.FormatInt(uid, 10)
	}
	return u.Username
}

func (SystemResolver) PrimaryGroup(uid int64) string {
	u, err := user.LookupId(strconv.FormatInt(uid, 10))
	if err != nil {
		return ""
	}
	return u.Gid
}

func (SystemResolver) GroupName(gid string) string {
	if gid == "" {
		return ""
	}
	g, err := user.LookupGroupId(gid)
	if err != nil {
		return ""
	}
	return g.Name
}
