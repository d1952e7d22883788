// Package orm wraps *gorm.DB with a small typed query helper shared by the
// repositories:
//
//	products := orm.For[models.Product](db)
//	p, err := products.Find(ctx, id)          // mo.Option[models.Product]
//	taken, err := products.Exists(ctx, "code = ?", code)
package orm

import (
	"context"
	"errors"

	"github.com/samber/mo"
	"gorm.io/gorm"

	"github.com/kicksup/kicksup/pkg/database"
)

// Query is a typed view over one table.
type Query[T any] struct {
	db *gorm.DB
}

// For binds a Query to db, or to database.DB when db is nil.
func For[T any](db *gorm.DB) Query[T] {
	if db == nil {
		db = database.DB
	}
	return Query[T]{db: db}
}

// DB exposes the underlying handle bound to ctx, for queries the helper
// does not cover.
func (q Query[T]) DB(ctx context.Context) *gorm.DB {
	return q.db.WithContext(ctx)
}

// Find loads a row by primary key. A missing row is None, not an error.
func (q Query[T]) Find(ctx context.Context, id any, preloads ...string) (mo.Option[T], error) {
	var out T
	tx := q.DB(ctx)
	for _, p := range preloads {
		tx = tx.Preload(p)
	}
	err := tx.Where("id = ?", id).First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return mo.None[T](), nil
	}
	if err != nil {
		return mo.None[T](), err
	}
	return mo.Some(out), nil
}

// FirstWhere loads the first row matching the condition.
func (q Query[T]) FirstWhere(ctx context.Context, cond string, args ...any) (mo.Option[T], error) {
	var out T
	err := q.DB(ctx).Where(cond, args...).First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return mo.None[T](), nil
	}
	if err != nil {
		return mo.None[T](), err
	}
	return mo.Some(out), nil
}

// Exists reports whether any row matches the condition.
func (q Query[T]) Exists(ctx context.Context, cond string, args ...any) (bool, error) {
	n, err := q.Count(ctx, cond, args...)
	return n > 0, err
}

// Count counts rows matching the condition; an empty cond counts all rows.
func (q Query[T]) Count(ctx context.Context, cond string, args ...any) (int64, error) {
	var n int64
	tx := q.DB(ctx).Model(new(T))
	if cond != "" {
		tx = tx.Where(cond, args...)
	}
	err := tx.Count(&n).Error
	return n, err
}

func (q Query[T]) Create(ctx context.Context, v *T) error {
	return q.DB(ctx).Create(v).Error
}

// Save writes every column of v.
func (q Query[T]) Save(ctx context.Context, v *T) error {
	return q.DB(ctx).Save(v).Error
}

// Delete removes v by its primary key.
func (q Query[T]) Delete(ctx context.Context, v *T) error {
	return q.DB(ctx).Delete(v).Error
}

// Transaction runs fn inside a database transaction bound to ctx. Returning
// an error rolls back.
func Transaction(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		db = database.DB
	}
	return db.WithContext(ctx).Transaction(fn)
}
