package mapper

import (
	"saga-be/internal/entity"
	"saga-be/internal/model"
)

type UserMapper struct{}

func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

func (m *UserMapper) ToEntity(u *model.User) *entity.User {
	if u == nil {
		return nil
	}
	return &entity.User{
		Id:        u.Id,
		Username:  u.Username,
		Role:      u.Role,
		IsActive:  u.Active,
		IsDeleted: u.Deleted,
	}
}
