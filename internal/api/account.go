package api

import (
	"context"  // Request-scoped lookups
	"errors"   // Error inspection
	"net/http" // HTTP status codes
	"strconv"  // Location header

	"freelancer_directory/internal/auth"    // Token issuer
	"freelancer_directory/internal/domain"  // Importing domain models
	"freelancer_directory/internal/metrics" // Login counters

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging
)

// LoginRequest is the body of POST /api/account/login
type LoginRequest struct {
	Username string `json:"username"` // Blank values fail authentication
	Password string `json:"password"`
}

// LoginHandler authenticates a freelancer and returns a bearer token
func LoginHandler(svc *auth.Service, m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, msgInvalidBody)
			return
		}
		res, err := svc.Authenticate(c.Request.Context(), req.Username, req.Password)
		if err != nil {
			if errors.Is(err, domain.ErrTooManyAttempts) {
				m.RecordLogin(metrics.LoginThrottled)
				logrus.WithField("username", req.Username).Warn("Login throttled")
			}
			respondError(c, err, logrus.Fields{"operation": "login", "username": req.Username})
			return
		}
		if !res.OK() {
			m.RecordLogin(metrics.LoginFailure)
			logrus.WithField("username", req.Username).Info("Login failed")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": msgInvalidLogin})
			return
		}
		m.RecordLogin(metrics.LoginSuccess)
		logrus.WithFields(logrus.Fields{"id": res.ID, "username": res.Username}).Info("Login succeeded")
		c.JSON(http.StatusOK, res) // Return the token in the response
	}
}

// SignupHandler registers a regular freelancer account and logs it in
func SignupHandler(repo domain.FreelancerRepository, svc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, ok := bindFreelancer(c, true)
		if !ok {
			return
		}
		ctx := c.Request.Context()
		if msg, err := checkAvailable(ctx, repo, req.Username, req.Email, 0); err != nil {
			respondError(c, err, logrus.Fields{"operation": "signup", "username": req.Username})
			return
		} else if msg != "" {
			badRequest(c, msg)
			return
		}

		f := req.toFreelancer()
		f.IsAdmin = false // Signup never grants admin
		f.IsArchived = false
		id, err := repo.Create(ctx, f)
		if err != nil {
			respondError(c, err, logrus.Fields{"operation": "signup", "username": req.Username})
			return
		}
		f.ID = id

		res, err := svc.Issue(f)
		if err != nil {
			respondError(c, err, logrus.Fields{"operation": "signup", "id": id})
			return
		}
		logrus.WithFields(logrus.Fields{"id": id, "username": f.Username}).Info("Freelancer signed up")
		c.Header("Location", freelancerLocation(id))
		c.JSON(http.StatusCreated, res)
	}
}

// checkAvailable returns a validation message when the username or email already belongs to
// a freelancer other than selfID
func checkAvailable(ctx context.Context, repo domain.FreelancerRepository, username, email string, selfID uint) (string, error) {
	existing, err := repo.GetByUsername(ctx, username)
	if err == nil && existing.ID != selfID {
		return msgUsernameTaken, nil
	} else if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return "", err
	}
	existing, err = repo.GetByEmail(ctx, email)
	if err == nil && existing.ID != selfID {
		return msgEmailTaken, nil
	} else if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return "", err
	}
	return "", nil
}

func freelancerLocation(id uint) string {
	return "/api/freelancers/" + strconv.FormatUint(uint64(id), 10)
}
