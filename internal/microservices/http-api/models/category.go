package models

type Category struct {
	ID   int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"size:100;not null;uniqueIndex"`
}

func (Category) TableName() string {
	return "categories"
}

// MovieCategory links a movie to a category; the pair is the key.
type MovieCategory struct {
	MovieID    int64 `json:"movieId" gorm:"primaryKey;autoIncrement:false"`
	CategoryID int64 `json:"categoryId" gorm:"primaryKey;autoIncrement:false;index"`

	Category *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE;"`
}

func (MovieCategory) TableName() string {
	return "movie_categories"
}
