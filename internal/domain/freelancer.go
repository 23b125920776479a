package domain

// Roles carried in the token role claim
const (
	RoleAdmin      = "Admin"      // Full access, including archive and delete
	RoleFreelancer = "Freelancer" // Regular self-registered account
)

// Freelancer Model (aggregate root)
type Freelancer struct {
	ID         uint       `gorm:"primaryKey" json:"id"`                                           // Primary key
	Username   string     `gorm:"size:100;uniqueIndex;not null" json:"username"`                  // Unique username
	Email      string     `gorm:"size:191;uniqueIndex;not null" json:"email"`                     // Unique email
	PhoneNum   string     `gorm:"size:32;not null" json:"phoneNum"`                               // Phone number
	Password   *string    `gorm:"size:255" json:"-"`                                              // Hashed password, nil when the account cannot log in
	IsArchived bool       `gorm:"not null;default:false;index" json:"isArchived"`                 // Soft-delete flag
	IsAdmin    bool       `gorm:"not null;default:false" json:"isAdmin"`                          // Admin role flag
	Skillsets  []Skillset `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"skillsets"` // Owned skillsets
	Hobbies    []Hobby    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"hobbies"`   // Owned hobbies
}

// TableName keeps the singular table name used by the schema
func (Freelancer) TableName() string { return "freelancer" }

// Role derives the token role claim from the admin flag
func (f *Freelancer) Role() string {
	if f.IsAdmin {
		return RoleAdmin
	}
	return RoleFreelancer
}

// HasPassword reports whether the freelancer can authenticate
func (f *Freelancer) HasPassword() bool {
	return f.Password != nil && *f.Password != ""
}

// Skillset Model
type Skillset struct {
	ID           uint   `gorm:"primaryKey" json:"id"`                                 // Primary key
	FreelancerID uint   `gorm:"index;not null" json:"freelancerId"`                   // Foreign key to Freelancer
	SkillName    string `gorm:"size:100;not null" json:"skillName" binding:"max=100"` // Skill name
}

// TableName keeps the singular table name used by the schema
func (Skillset) TableName() string { return "skillset" }

// Hobby Model
type Hobby struct {
	ID           uint   `gorm:"primaryKey" json:"id"`                                 // Primary key
	FreelancerID uint   `gorm:"index;not null" json:"freelancerId"`                   // Foreign key to Freelancer
	HobbyName    string `gorm:"size:100;not null" json:"hobbyName" binding:"max=100"` // Hobby name
}

// TableName keeps the singular table name used by the schema
func (Hobby) TableName() string { return "hobby" }
