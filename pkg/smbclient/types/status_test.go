package types

import "testing"

func TestStatusString(t *testing.T) {
	if got := StatusObjectNameNotFound.String(); got != "STATUS_OBJECT_NAME_NOT_FOUND" {
		t.Errorf("expected STATUS_OBJECT_NAME_NOT_FOUND, got %s", got)
	}
	if got := StatusDirectoryNotEmpty.String(); got != "STATUS_DIRECTORY_NOT_EMPTY" {
		t.Errorf("expected STATUS_DIRECTORY_NOT_EMPTY, got %s", got)
	}
	if got := Status(0xC0DEC0DE).String(); got != "STATUS_0xC0DEC0DE" {
		t.Errorf("unknown status rendered as %s", got)
	}
}

func TestStatusSeverity(t *testing.T) {
	if !StatusSuccess.IsSuccess() || StatusSuccess.IsError() {
		t.Error("StatusSuccess should be success")
	}
	if !StatusNoMoreFiles.IsWarning() {
		t.Error("StatusNoMoreFiles should be a warning")
	}
	if !StatusDeletePending.IsError() || StatusDeletePending.Severity() != SeverityError {
		t.Error("StatusDeletePending should be an error with severity 3")
	}
}

func TestStatusNamesCoverConstants(t *testing.T) {
	for s, name := range statusNames {
		if got := s.String(); got != name {
			t.Errorf("0x%08X: expected %s, got %s", uint32(s), name, got)
		}
	}
	if Status(0x40000000).Severity() != SeverityInformational || !Status(0x40000000).IsSuccess() {
		t.Error("informational status should count as success")
	}
}

func TestStatusConstantsMatchMSERREF(t *testing.T) {
	cases := map[Status]uint32{
		StatusObjectNameNotFound:  0xC0000034,
		StatusObjectNameCollision: 0xC0000035,
		StatusDeletePending:       0xC0000056,
		StatusDirectoryNotEmpty:   0xC0000101,
	}
	for s, want := range cases {
		if uint32(s) != want {
			t.Errorf("%s: expected 0x%08X, got 0x%08X", s, want, uint32(s))
		}
	}
}

func TestCreateDisposition(t *testing.T) {
	if !FileOpenIf.CreatesMissing() || FileOpen.CreatesMissing() || FileOverwrite.CreatesMissing() {
		t.Error("CreatesMissing mismatch")
	}
	if !FileOverwriteIf.Truncates() || FileOpenIf.Truncates() {
		t.Error("Truncates mismatch")
	}
	if FileCreate.String() != "CREATE" {
		t.Errorf("unexpected disposition name %s", FileCreate)
	}
}

func TestAccessHelpers(t *testing.T) {
	if !HasWriteAccess(GenericRead | GenericWrite) {
		t.Error("GENERIC_WRITE should grant write access")
	}
	if HasWriteAccess(GenericRead) {
		t.Error("GENERIC_READ alone should not grant write access")
	}
	if !HasDeleteAccess(Delete | GenericRead) {
		t.Error("DELETE should grant delete access")
	}
	if HasDeleteAccess(GenericRead | GenericWrite) {
		t.Error("read/write should not grant delete access")
	}
}
