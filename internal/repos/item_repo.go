package repos

import (
	"database/sql"
	"errors"
	"fmt"

	"revive/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ItemRepo struct{ DB *sqlx.DB }

func NewItemRepo(db *sqlx.DB) *ItemRepo { return &ItemRepo{DB: db} }

const itemColumns = `
  id, name, category,
  COALESCE(description,'') AS description,
  COALESCE(contact,'')     AS contact,
  COALESCE(image,'')       AS image,
  COALESCE(create_time,'') AS create_time,
  COALESCE(address,'')     AS address,
  COALESCE(attributes,'')  AS attributes`

// NextID returns max(id)+1. Deleted ids are never handed out again since the
// maximum only grows; a racing insert with the same id trips the primary key
// and surfaces as a normal failure to the later writer.
func (r *ItemRepo) NextID() (int, error) {
	var id int
	err := r.DB.Get(&id, `SELECT COALESCE(MAX(id),0)+1 FROM items`)
	return id, err
}

func (r *ItemRepo) Insert(it domain.Item) error {
	_, err := r.DB.Exec(`
		INSERT INTO items(id,name,category,description,contact,image,create_time,address,attributes)
		VALUES(?,?,?,?,?,?,?,?,?)
	`, it.ID, it.Name, it.Category, it.Description, it.Contact, it.Image, it.CreateTime, it.Address, it.Attributes)
	return err
}

func (r *ItemRepo) Get(id int) (*domain.Item, error) {
	var it domain.Item
	err := r.DB.Get(&it, `SELECT `+itemColumns+` FROM items WHERE id=?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: item %d", domain.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *ItemRepo) Delete(id int) error {
	res, err := r.DB.Exec(`DELETE FROM items WHERE id=?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: item %d", domain.ErrNotFound, id)
	}
	return nil
}

func (r *ItemRepo) List() ([]domain.Item, error) {
	var out []domain.Item
	err := r.DB.Select(&out, `SELECT `+itemColumns+` FROM items ORDER BY id ASC`)
	return out, err
}

// CountByCategory backs the referential-integrity guard on category deletion.
func (r *ItemRepo) CountByCategory(category string) (int, error) {
	var n int
	err := r.DB.Get(&n, `SELECT COUNT(*) FROM items WHERE category=?`, category)
	return n, err
}
