package repositories

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/samber/mo"
	"gorm.io/gorm"

	"github.com/kicksup/kicksup/app/models"
	"github.com/kicksup/kicksup/pkg/orm"
)

// ProductFilter narrows a catalog listing. Every set field must match.
type ProductFilter struct {
	// SearchTerm matches name, description or code, case-insensitively.
	SearchTerm string
	Size       mo.Option[models.Size]
	Color      mo.Option[models.Color]
}

// ProductRepository handles database operations for Product.
type ProductRepository struct {
	q orm.Query[models.Product]
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{q: orm.For[models.Product](db)}
}

func (r *ProductRepository) FindByID(ctx context.Context, id uuid.UUID) (mo.Option[models.Product], error) {
	return r.q.Find(ctx, id)
}

// FindByIDs loads every product whose id is in ids. Missing ids are simply
// absent from the result.
func (r *ProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error) {
	var products []models.Product
	if len(ids) == 0 {
		return products, nil
	}
	err := r.q.DB(ctx).Where("id IN ?", ids).Find(&products).Error
	return products, err
}

// likeEscaper makes a search term match literally. '!' is the escape
// character because a backslash needs doubling in MySQL literals. '[' is a
// wildcard in SQL Server.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_", "[", "![")

// Search returns the matching products ordered by name.
func (r *ProductRepository) Search(ctx context.Context, f ProductFilter) ([]models.Product, error) {
	tx := r.q.DB(ctx)
	if term := strings.TrimSpace(f.SearchTerm); term != "" {
		like := "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
		tx = tx.Where("LOWER(name) LIKE ? ESCAPE '!' OR LOWER(description) LIKE ? ESCAPE '!' OR LOWER(code) LIKE ? ESCAPE '!'",
			like, like, like)
	}
	if size, ok := f.Size.Get(); ok {
		tx = tx.Where("size = ?", size)
	}
	if color, ok := f.Color.Get(); ok {
		tx = tx.Where("color = ?", color)
	}

	var products []models.Product
	err := tx.Order("name asc").Find(&products).Error
	return products, err
}

// CodeTaken reports whether another product (not except) uses code.
// Pass uuid.Nil as except when creating.
func (r *ProductRepository) CodeTaken(ctx context.Context, code string, except uuid.UUID) (bool, error) {
	if except == uuid.Nil {
		return r.q.Exists(ctx, "code = ?", code)
	}
	return r.q.Exists(ctx, "code = ? AND id <> ?", code, except)
}

func (r *ProductRepository) Create(ctx context.Context, p *models.Product) error {
	return r.q.Create(ctx, p)
}

func (r *ProductRepository) Update(ctx context.Context, p *models.Product) error {
	return r.q.Save(ctx, p)
}

func (r *ProductRepository) Delete(ctx context.Context, p *models.Product) error {
	return r.q.Delete(ctx, p)
}

// ImageInUse reports whether any product or user profile still points at
// url.
func (r *ProductRepository) ImageInUse(ctx context.Context, url string) (bool, error) {
	if used, err := r.q.Exists(ctx, "image_url = ?", url); err != nil || used {
		return used, err
	}
	var n int64
	err := r.q.DB(ctx).Model(&models.User{}).Where("profile_image_url = ?", url).Count(&n).Error
	return n > 0, err
}

// StockLevels counts products at or below threshold (but not empty) and
// products with no stock at all.
func (r *ProductRepository) StockLevels(ctx context.Context, threshold int) (low, out int64, err error) {
	if low, err = r.q.Count(ctx, "stock > 0 AND stock <= ?", threshold); err != nil {
		return 0, 0, err
	}
	out, err = r.q.Count(ctx, "stock <= 0")
	return low, out, err
}
