package api

import (
	"errors"  // Error inspection
	"strings" // String manipulation

	"freelancer_directory/internal/domain" // Importing domain models
	"freelancer_directory/internal/utils"  // Email and phone formats

	"github.com/gin-gonic/gin"               // Gin web framework
	"github.com/gin-gonic/gin/binding"       // Request binding
	"github.com/go-playground/validator/v10" // Binding rules behind gin
	"github.com/sirupsen/logrus"             // Logging
)

// minSearchLength is the shortest search phrase the filter accepts
const minSearchLength = 2

// Validation messages returned to clients
const (
	msgUsernameRequired = "Username is required."
	msgUsernameTooLong  = "Username must be at most 100 characters long."
	msgEmailRequired    = "Email is required."
	msgEmailTooLong     = "Email must be at most 191 characters long."
	msgEmailInvalid     = "Please enter a valid email address."
	msgPhoneRequired    = "Phone number is required."
	msgPhoneInvalid     = "Invalid phone number format."
	msgPasswordRequired = "Password is required."
	msgPasswordTooShort = "Password must be at least 8 characters long."
	msgNameTooLong      = "Skill and hobby names must be at most 100 characters long."
	msgSearchTooShort   = "Search phrase must be at least 2 characters long."
	msgIDMismatch       = "Freelancer ID mismatch."
	msgUsernameTaken    = "Username already exists."
	msgEmailTaken       = "Email is already registered."
	msgInvalidLogin     = "Invalid username or password."
	msgInvalidBody      = "Invalid request body."
	msgInvalidID        = "Invalid freelancer id."
)

// Custom binding tags
const (
	tagNotBlank = "notblank"
	tagEmail    = "email_address"
	tagPhone    = "phone_number"
)

func init() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		logrus.Warn("gin validator engine is not go-playground, custom binding rules are disabled")
		return
	}
	rules := map[string]validator.Func{
		tagNotBlank: func(fl validator.FieldLevel) bool { return strings.TrimSpace(fl.Field().String()) != "" },
		tagEmail:    func(fl validator.FieldLevel) bool { return utils.IsValidEmail(fl.Field().String()) },
		tagPhone:    func(fl validator.FieldLevel) bool { return utils.IsValidPhone(fl.Field().String()) },
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			logrus.WithError(err).WithField("tag", tag).Fatal("Failed to register binding rule")
		}
	}
}

// FreelancerRequest is the body accepted by signup, create and update
type FreelancerRequest struct {
	ID         uint              `json:"id"`                                             // Must match the path id on update
	Username   string            `json:"username" binding:"notblank,max=100"`            // Unique username
	Email      string            `json:"email" binding:"notblank,max=191,email_address"` // Unique email
	PhoneNum   string            `json:"phoneNum" binding:"notblank,phone_number"`       // Phone number
	Password   string            `json:"password" binding:"omitempty,min=8"`             // Plaintext, hashed before storage
	IsArchived bool              `json:"isArchived"`                                     // Honoured for admins only
	IsAdmin    bool              `json:"isAdmin"`                                        // Honoured for admins only
	Skillsets  []domain.Skillset `json:"skillsets" binding:"dive"`                       // Replaces the stored skillsets
	Hobbies    []domain.Hobby    `json:"hobbies" binding:"dive"`                         // Replaces the stored hobbies
}

// bindFreelancer binds and validates the body, writing a 400 when it is not acceptable
func bindFreelancer(c *gin.Context, requirePassword bool) (*FreelancerRequest, bool) {
	var req FreelancerRequest // Bind JSON request to struct
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, bindingMessage(err))
		return nil, false
	}
	req.normalize()
	if requirePassword && req.Password == "" {
		badRequest(c, msgPasswordRequired)
		return nil, false
	}
	return &req, true
}

// bindingMessage maps the first failed binding rule to a client message
func bindingMessage(err error) string {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return msgInvalidBody // Malformed JSON or a mistyped field
	}
	fe := errs[0]
	switch fe.StructField() {
	case "Username":
		if fe.Tag() == "max" {
			return msgUsernameTooLong
		}
		return msgUsernameRequired
	case "Email":
		switch fe.Tag() {
		case "max":
			return msgEmailTooLong
		case tagEmail:
			return msgEmailInvalid
		}
		return msgEmailRequired
	case "PhoneNum":
		if fe.Tag() == tagPhone {
			return msgPhoneInvalid
		}
		return msgPhoneRequired
	case "Password":
		return msgPasswordTooShort
	case "SkillName", "HobbyName":
		return msgNameTooLong
	}
	return msgInvalidBody
}

// normalize trims the text fields and drops blank child names
func (r *FreelancerRequest) normalize() {
	r.Username = strings.TrimSpace(r.Username)
	r.Email = strings.TrimSpace(r.Email)
	r.PhoneNum = strings.TrimSpace(r.PhoneNum)

	skillsets := make([]domain.Skillset, 0, len(r.Skillsets))
	for _, s := range r.Skillsets {
		if name := strings.TrimSpace(s.SkillName); name != "" {
			skillsets = append(skillsets, domain.Skillset{SkillName: name})
		}
	}
	r.Skillsets = skillsets

	hobbies := make([]domain.Hobby, 0, len(r.Hobbies))
	for _, h := range r.Hobbies {
		if name := strings.TrimSpace(h.HobbyName); name != "" {
			hobbies = append(hobbies, domain.Hobby{HobbyName: name})
		}
	}
	r.Hobbies = hobbies
}

// toFreelancer builds the domain record; the password is left nil when none was sent
func (r *FreelancerRequest) toFreelancer() *domain.Freelancer {
	f := &domain.Freelancer{
		ID:         r.ID,
		Username:   r.Username,
		Email:      r.Email,
		PhoneNum:   r.PhoneNum,
		IsArchived: r.IsArchived,
		IsAdmin:    r.IsAdmin,
		Skillsets:  r.Skillsets,
		Hobbies:    r.Hobbies,
	}
	if r.Password != "" {
		password := r.Password
		f.Password = &password
	}
	return f
}
