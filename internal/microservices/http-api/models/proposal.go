package models

import "time"

type MovieProposal struct {
	ID        int64          `json:"id" gorm:"primaryKey;autoIncrement"`
	Title     string         `json:"title" gorm:"size:200;not null"`
	Year      int            `json:"year" gorm:"not null"`
	Reason    string         `json:"reason" gorm:"size:2000;not null"`
	Type      ContentType    `json:"type" gorm:"size:16;not null"`
	Status    ProposalStatus `json:"status" gorm:"size:16;not null;index;default:'Pending'"`
	CreatedAt time.Time      `json:"createdAt" gorm:"index"`
	UserID    string         `json:"userId" gorm:"type:uuid;not null;index"`

	// association
	Categories []MovieProposalCategory `json:"categories,omitempty" gorm:"foreignKey:ProposalID;constraint:OnDelete:CASCADE;"`
}

func (MovieProposal) TableName() string {
	return "movie_proposals"
}

// CategoryIDs returns the ids of the linked categories in link order.
func (p *MovieProposal) CategoryIDs() []int64 {
	ids := make([]int64, 0, len(p.Categories))
	for _, c := range p.Categories {
		ids = append(ids, c.CategoryID)
	}
	return ids
}

type MovieProposalCategory struct {
	ProposalID int64 `json:"proposalId" gorm:"primaryKey;autoIncrement:false"`
	CategoryID int64 `json:"categoryId" gorm:"primaryKey;autoIncrement:false;index"`

	Category *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE;"`
}

func (MovieProposalCategory) TableName() string {
	return "movie_proposal_categories"
}
