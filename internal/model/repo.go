package model

import "journal/internal/model/store"

// Repository 定义数据存储操作接口，具体实现见 sql 与 mongodb 子包
type Repository = store.Repository

var (
	ErrNotFound  = store.ErrNotFound
	ErrDuplicate = store.ErrDuplicate
)
