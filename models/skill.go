package models

const (
	ImportanceHigh   = "High"
	ImportanceMedium = "Medium"
	ImportanceLow    = "Low"
)

// Levels reported for a skill the caller has no UserSkill row for.
const (
	DefaultCurrentLevel  = 0
	DefaultRequiredLevel = 70
)

type Skill struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Importance  string `gorm:"size:10;not null;check:importance IN ('High', 'Medium', 'Low')" json:"importance"`
	DemandScore int    `gorm:"not null;default:0" json:"demand_score"`

	Courses []Course `gorm:"foreignKey:SkillID;constraint:OnDelete:CASCADE" json:"courses,omitempty"`
}

type Course struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	SkillID  uint    `gorm:"not null;index" json:"skill_id"`
	Title    string  `gorm:"size:200;not null" json:"title"`
	Provider string  `gorm:"size:100" json:"provider"`
	Duration string  `gorm:"size:50" json:"duration"`
	Rating   float64 `json:"rating"`
	Students string  `gorm:"size:50" json:"students"`
	Price    string  `gorm:"size:20" json:"price"`
	Level    string  `gorm:"size:50" json:"level"`
}

// UserSkill records how far a user is from the proficiency a skill calls for.
type UserSkill struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	UserID        string `gorm:"type:uuid;not null;uniqueIndex:idx_user_skill" json:"user_id"`
	SkillID       uint   `gorm:"not null;uniqueIndex:idx_user_skill" json:"skill_id"`
	CurrentLevel  int    `gorm:"not null;default:0" json:"current_level"`
	RequiredLevel int    `gorm:"not null;default:70" json:"required_level"`

	Skill Skill `gorm:"foreignKey:SkillID;constraint:OnDelete:CASCADE" json:"-"`
}
