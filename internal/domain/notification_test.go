package domain

import (
	"fmt"
	"testing"
)

func TestInboxDrain(t *testing.T) {
	var in Inbox
	if got := in.Drain(); got == nil || len(got) != 0 {
		t.Fatalf("empty drain = %#v", got)
	}

	in.Push(LevelSuccess, "saved")
	in.Push(LevelError, "failed")
	got := in.Drain()
	if len(got) != 2 || got[0].Message != "saved" || got[1].Level != LevelError {
		t.Fatalf("drain = %+v", got)
	}
	if len(in.Drain()) != 0 {
		t.Fatal("drain did not empty the inbox")
	}
}

func TestInboxLimit(t *testing.T) {
	var in Inbox
	for i := 0; i < inboxLimit+10; i++ {
		in.Push(LevelInfo, fmt.Sprint(i))
	}
	got := in.Drain()
	if len(got) != inboxLimit || got[0].Message != "10" {
		t.Fatalf("kept %d, first %q", len(got), got[0].Message)
	}
}

func TestSessionReset(t *testing.T) {
	s := NewSession()
	id := 4
	s.CVID = &id
	s.TemplateID = 3
	s.Image = ImageState{Present: true, Filename: "a.png"}

	s.Reset()
	if s.Saved() || s.TemplateID != 1 || s.Image.Present || s.Revision != 1 {
		t.Fatalf("session = %+v", s)
	}
}

func TestSavedOnSessionValue(t *testing.T) {
	id := 1
	if (Session{}).Saved() || !(Session{CVID: &id}).Saved() {
		t.Fatal("Saved misreports the cv id")
	}
}
