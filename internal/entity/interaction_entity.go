package entity

import (
	"time"

	"github.com/google/uuid"
)

type LibraryStatus string

const (
	LibraryStatusWatched    LibraryStatus = "izlendi"
	LibraryStatusToWatch    LibraryStatus = "izlenecek"
	LibraryStatusRead       LibraryStatus = "okundu"
	LibraryStatusToRead     LibraryStatus = "okunacak"
	LibraryStatusInProgress LibraryStatus = "devam_ediyor"
)

func (s LibraryStatus) IsCompleted() bool {
	return s == LibraryStatusWatched || s == LibraryStatusRead
}

func (s LibraryStatus) IsPlanned() bool {
	return s == LibraryStatusToWatch || s == LibraryStatusToRead
}

// LibraryEntry is a user's tracking status for one content item. Content is
// preloaded by the repository.
type LibraryEntry struct {
	Id        int64
	UserId    uuid.UUID
	ContentId int64
	Status    LibraryStatus
	Progress  float64
	UpdatedAt time.Time
	Content   *ContentItem
}

type Rating struct {
	Id        int64
	UserId    uuid.UUID
	ContentId int64
	Score     float64
	CreatedAt time.Time
	Content   *ContentItem
}

type Review struct {
	Id        int64
	UserId    uuid.UUID
	ContentId int64
	CreatedAt time.Time
}

type Activity struct {
	Id        int64
	UserId    uuid.UUID
	Type      string
	CreatedAt time.Time
}
