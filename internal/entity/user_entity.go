package entity

import "github.com/google/uuid"

type User struct {
	Id        uuid.UUID
	Username  string
	Role      string
	IsActive  bool
	IsDeleted bool
}
