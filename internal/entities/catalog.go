package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LoanStatus string

const (
	LoanStatusMaintenance LoanStatus = "m"
	LoanStatusOnLoan      LoanStatus = "o"
	LoanStatusAvailable   LoanStatus = "a"
	LoanStatusReserved    LoanStatus = "r"
)

// LoanStatuses lists every status in display order.
var LoanStatuses = []LoanStatus{
	LoanStatusMaintenance,
	LoanStatusOnLoan,
	LoanStatusAvailable,
	LoanStatusReserved,
}

var loanStatusLabels = map[LoanStatus]string{
	LoanStatusMaintenance: "Maintenance",
	LoanStatusOnLoan:      "On loan",
	LoanStatusAvailable:   "Available",
	LoanStatusReserved:    "Reserved",
}

// IsValid reports whether s is one of the four known statuses.
func (s LoanStatus) IsValid() bool {
	_, ok := loanStatusLabels[s]
	return ok
}

// Label returns the human readable status, or the raw code if unknown.
func (s LoanStatus) Label() string {
	if label, ok := loanStatusLabels[s]; ok {
		return label
	}
	return string(s)
}

type Genre struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;size:20;not null" json:"name"`

	// Back-reference over the book_genres join table, never loaded
	Books []Book `gorm:"many2many:book_genres;" json:"-"`
}

type Language struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;size:100;not null" json:"name"`

	// Back-reference over the book_languages join table, never loaded
	Books []Book `gorm:"many2many:book_languages;" json:"-"`
}

type Author struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	FirstName   string     `gorm:"size:100;not null" json:"first_name"`
	LastName    string     `gorm:"index;size:100;not null" json:"last_name"`
	DateOfBirth *time.Time `gorm:"type:date" json:"date_of_birth,omitempty"`
	DateOfDeath *time.Time `gorm:"type:date" json:"date_of_death,omitempty"`
}

type Book struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Title     string     `gorm:"index;size:200;not null" json:"title"`
	Summary   *string    `gorm:"size:500" json:"summary,omitempty"`
	ISBN      string     `gorm:"column:isbn;uniqueIndex;size:13;not null" json:"isbn"`
	AuthorID  uint       `gorm:"index;not null" json:"author_id"`
	Author    Author     `gorm:"foreignKey:AuthorID;constraint:OnDelete:RESTRICT" json:"author"`
	Genres    []Genre    `gorm:"many2many:book_genres;" json:"genres"`
	Languages []Language `gorm:"many2many:book_languages;" json:"languages"`
}

// BookInstance is one physical copy of a Book.
type BookInstance struct {
	ID      uuid.UUID  `gorm:"primaryKey;size:36" json:"id"`
	BookID  uint       `gorm:"index;not null" json:"book_id"`
	Book    Book       `gorm:"foreignKey:BookID;constraint:OnDelete:RESTRICT" json:"book"`
	DueBack *time.Time `gorm:"index;type:date" json:"due_back,omitempty"`
	Imprint string     `gorm:"size:20" json:"imprint"`
	Status  LoanStatus `gorm:"index;size:1;not null;default:'m'" json:"status"`
}

// BeforeCreate assigns a random identifier to new instances.
func (bi *BookInstance) BeforeCreate(tx *gorm.DB) error {
	if bi.ID == uuid.Nil {
		bi.ID = uuid.New()
	}
	if bi.Status == "" {
		bi.Status = LoanStatusMaintenance
	}
	return nil
}

func (Genre) TableName() string {
	return "genres"
}

func (Language) TableName() string {
	return "languages"
}

func (Author) TableName() string {
	return "authors"
}

func (Book) TableName() string {
	return "books"
}

func (BookInstance) TableName() string {
	return "book_instances"
}

// AllModels returns every persisted model in migration order.
func AllModels() []any {
	return []any{
		&Genre{},
		&Language{},
		&Author{},
		&Book{},
		&BookInstance{},
		&ChangeEntry{},
	}
}
