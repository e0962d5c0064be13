package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExcelFile is the metadata of a spreadsheet attached to a taxonomy node.
type ExcelFile struct {
	FileName   string    `json:"fileName" bson:"fileName"`
	FileURL    string    `json:"fileUrl" bson:"fileUrl"`
	SheetName  string    `json:"sheetName,omitempty" bson:"sheetName,omitempty"`
	RowCount   int       `json:"rowCount,omitempty" bson:"rowCount,omitempty"`
	UploadedAt time.Time `json:"uploadedAt" bson:"uploadedAt"`
}

// Category is the top taxonomy level. The embedded Subcategories string
// slice is the legacy shape; the subcategories collection is the current
// one and both are kept in sync on writes. Same for the order/sortOrder
// and active/isActive field pairs.
type Category struct {
	ID            primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name          string             `json:"name" bson:"name"`
	Slug          string             `json:"slug" bson:"slug"`
	Icon          string             `json:"icon,omitempty" bson:"icon,omitempty"`
	Order         int                `json:"order" bson:"order"`
	SortOrder     int                `json:"sortOrder" bson:"sortOrder"`
	Active        bool               `json:"active" bson:"active"`
	IsActive      bool               `json:"isActive" bson:"isActive"`
	Subcategories []string           `json:"subcategories" bson:"subcategories"`
	ExcelFile     *ExcelFile         `json:"excelFile,omitempty" bson:"excelFile,omitempty"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// Subcategory references its parent category by hex id string. Slug is
// unique per category.
type Subcategory struct {
	ID         primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	CategoryID string             `json:"categoryId" bson:"categoryId"`
	Name       string             `json:"name" bson:"name"`
	Slug       string             `json:"slug" bson:"slug"`
	Icon       string             `json:"icon,omitempty" bson:"icon,omitempty"`
	Order      int                `json:"order" bson:"order"`
	SortOrder  int                `json:"sortOrder" bson:"sortOrder"`
	Active     bool               `json:"active" bson:"active"`
	IsActive   bool               `json:"isActive" bson:"isActive"`
	ExcelFile  *ExcelFile         `json:"excelFile,omitempty" bson:"excelFile,omitempty"`
	CreatedAt  time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt  time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// MiniSubcategory is the third taxonomy level, used for fine-grained
// listing pages. Slug is unique per subcategory.
type MiniSubcategory struct {
	ID            primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	SubCategoryID string             `json:"subCategoryId" bson:"subCategoryId"`
	Name          string             `json:"name" bson:"name"`
	Slug          string             `json:"slug" bson:"slug"`
	Order         int                `json:"order" bson:"order"`
	Active        bool               `json:"active" bson:"active"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt" bson:"updatedAt"`
}
