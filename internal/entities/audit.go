package entities

import "time"

// ChangeAction is the kind of edit recorded in the admin history.
type ChangeAction string

const (
	ChangeAddition ChangeAction = "addition"
	ChangeChange   ChangeAction = "change"
	ChangeDeletion ChangeAction = "deletion"
)

// ChangeEntry records one management edit. ObjectRepr keeps the record's
// display string so deletions stay readable.
type ChangeEntry struct {
	ID         uint         `gorm:"primaryKey" json:"id"`
	Action     ChangeAction `gorm:"index;size:20;not null" json:"action"`
	Kind       string       `gorm:"index:idx_change_object;size:20;not null" json:"kind"`
	ObjectID   string       `gorm:"index:idx_change_object;size:36;not null" json:"object_id"`
	ObjectRepr string       `gorm:"size:200" json:"object_repr"`
	Message    string       `gorm:"size:500" json:"message,omitempty"`
	CreatedAt  time.Time    `gorm:"index" json:"created_at"`
}

func (ChangeEntry) TableName() string {
	return "admin_change_entries"
}
