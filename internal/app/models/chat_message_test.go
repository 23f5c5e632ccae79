package models

import (
	"testing"
	"time"
)

func TestChatMessageEditableAt(t *testing.T) {
	created := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	m := &ChatMessage{CreatedAt: created}

	if !m.EditableAt(created.Add(14 * time.Minute)) {
		t.Error("message should be editable within the window")
	}
	if !m.EditableAt(created.Add(EditWindow)) {
		t.Error("message should be editable exactly at the window boundary")
	}
	if m.EditableAt(created.Add(16 * time.Minute)) {
		t.Error("message must not be editable after the window")
	}

	deleted := &ChatMessage{CreatedAt: created, IsDeleted: true}
	if deleted.EditableAt(created.Add(time.Minute)) {
		t.Error("deleted message must never be editable")
	}
}
