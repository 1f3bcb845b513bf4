package ident

import (
	"os/user"
	"strconv"
	"testing"
)

// This uid should not exist on any sane test host; if it somehow does, the
// fallback assertions are skipped rather than failed.
const improbableUID = int64(999999983)

func TestUnknownUserFallbacks(t *testing.T) {
	if _, err := user.LookupId(strconv.FormatInt(improbableUID, 10)); err == nil {
		t.Skipf("uid %d exists on this host", improbableUID)
	}
	r := SystemResolver{}
	if got := r.UserName(improbableUID); got != "999999983" {
		t.Fatalf("unknown uid must resolve to its decimal text, got %q", got)
	}
	if got := r.PrimaryGroup(improbableUID); got != "" {
		t.Fatalf("unknown uid must have empty group id, got %q", got)
	}
}

func TestGroupNameEmptyGid(t *testing.T) {
	if got := (SystemResolver{}).GroupName(""); got != "" {
		t.Fatalf("empty gid must resolve to empty name, got %q", got)
	}
}

func TestKnownUser(t *testing.T) {
	me, err := user.Current()
	if err != nil {
		t.Skipf("no current user: %v", err)
	}
	uid, err := strconv.ParseInt(me.Uid, 10, 64)
	if err != nil {
		t.Skipf("non-numeric uid %q", me.Uid)
	}
	r := SystemResolver{}
	if got := r.UserName(uid); got != me.Username {
		t.Fatalf("got %q, want %q", got, me.Username)
	}
	if got := r.PrimaryGroup(uid); got != me.Gid {
		t.Fatalf("got gid %q, want %q", got, me.Gid)
	}
}
