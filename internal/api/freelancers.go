package api

import (
	"context"      // Repository calls
	"net/http"     // HTTP status codes
	"strconv"      // Query and path parsing
	"strings"      // String manipulation
	"unicode/utf8" // Search phrase length

	"freelancer_directory/internal/domain"     // Importing domain models
	"freelancer_directory/internal/middleware" // Caller identity

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging
)

// parseID reads the :id path parameter
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		badRequest(c, msgInvalidID)
		return 0, false
	}
	return uint(id), true
}

// parseListOptions reads the filter query parameters, writing a 400 when one is malformed
func parseListOptions(c *gin.Context) (domain.ListOptions, bool) {
	var opts domain.ListOptions
	pageParam := c.Query("currentPageNumber")
	if pageParam == "" {
		pageParam = c.Query("pageNumber") // Accept the short alias
	}
	if pageParam != "" {
		v, err := strconv.Atoi(pageParam)
		if err != nil {
			badRequest(c, "Page number must be a whole number.")
			return opts, false
		}
		opts.PageNumber = v
	}
	if ps := c.Query("pageSize"); ps != "" {
		v, err := strconv.Atoi(ps)
		if err != nil {
			badRequest(c, "Page size must be a whole number.")
			return opts, false
		}
		opts.PageSize = v
	}
	if archived := c.Query("isArchived"); archived != "" {
		v, err := strconv.ParseBool(archived)
		if err != nil {
			badRequest(c, "isArchived must be true or false.")
			return opts, false
		}
		opts.IsArchived = &v
	}
	opts.SearchPhrase = strings.TrimSpace(c.Query("searchPhrase"))
	if opts.SearchPhrase != "" && utf8.RuneCountInString(opts.SearchPhrase) < minSearchLength {
		badRequest(c, msgSearchTooShort)
		return opts, false
	}
	if order := strings.ToLower(strings.TrimSpace(c.Query("sortOrder"))); order != "" {
		if order != domain.SortAsc && order != domain.SortDesc {
			badRequest(c, "Sort order must be asc or desc.")
			return opts, false
		}
		opts.SortOrder = order
	}
	return opts, true
}

// FilterFreelancersHandler returns one page of freelancers matching the query filters
func FilterFreelancersHandler(repo domain.FreelancerRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		opts, ok := parseListOptions(c)
		if !ok {
			return
		}
		page, err := repo.List(c.Request.Context(), opts)
		if err != nil {
			respondError(c, err, logrus.Fields{"operation": "filter"})
			return
		}
		c.JSON(http.StatusOK, page)
	}
}

// GetFreelancerHandler returns one freelancer with its skillsets and hobbies
func GetFreelancerHandler(repo domain.FreelancerRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}
		f, err := repo.GetByID(c.Request.Context(), id)
		if err != nil {
			respondError(c, err, logrus.Fields{"operation": "get", "id": id})
			return
		}
		c.JSON(http.StatusOK, f)
	}
}

// CreateFreelancerHandler creates a freelancer on behalf of an admin
func CreateFreelancerHandler(repo domain.FreelancerRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, ok := bindFreelancer(c, false)
		if !ok {
			return
		}
		ctx := c.Request.Context()
		fields := logrus.Fields{"operation": "create", "username": req.Username}
		if msg, err := checkAvailable(ctx, repo, req.Username, req.Email, 0); err != nil {
			respondError(c, err, fields)
			return
		} else if msg != "" {
			badRequest(c, msg)
			return
		}

		id, err := repo.Create(ctx, req.toFreelancer())
		if err != nil {
			respondError(c, err, fields)
			return
		}
		created, err := repo.GetByID(ctx, id)
		if err != nil {
			respondError(c, err, fields)
			return
		}
		actor, _ := middleware.CurrentUserID(c)
		logrus.WithFields(logrus.Fields{"id": id, "username": created.Username, "by": actor}).Info("Freelancer created")
		c.Header("Location", freelancerLocation(id))
		c.JSON(http.StatusCreated, created)
	}
}

// UpdateFreelancerHandler replaces a freelancer's fields and child collections.
// Freelancers may update themselves; only admins may change the admin and archive flags.
func UpdateFreelancerHandler(repo domain.FreelancerRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}
		req, ok := bindFreelancer(c, false)
		if !ok {
			return
		}
		if req.ID != id {
			badRequest(c, msgIDMismatch)
			return
		}
		callerID, _ := middleware.CurrentUserID(c)
		admin := middleware.IsAdmin(c)
		if !admin && callerID != id {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": msgForbiddenUpdate})
			return
		}

		ctx := c.Request.Context()
		fields := logrus.Fields{"operation": "update", "id": id}
		existing, err := repo.GetByID(ctx, id)
		if err != nil {
			respondError(c, err, fields)
			return
		}
		if msg, err := checkAvailable(ctx, repo, req.Username, req.Email, id); err != nil {
			respondError(c, err, fields)
			return
		} else if msg != "" {
			badRequest(c, msg)
			return
		}

		f := req.toFreelancer()
		if !admin {
			f.IsAdmin = existing.IsAdmin
			f.IsArchived = existing.IsArchived
		}
		updated, err := repo.Update(ctx, f)
		if err != nil {
			respondError(c, err, fields)
			return
		}
		if !updated {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"message": msgNotFound})
			return
		}
		logrus.WithFields(logrus.Fields{"id": id, "by": callerID}).Info("Freelancer updated")
		c.Status(http.StatusNoContent)
	}
}

// ArchiveFreelancerHandler hides a freelancer from unarchived listings
func ArchiveFreelancerHandler(repo domain.FreelancerRepository) gin.HandlerFunc {
	return flagHandler("archive", repo.Archive)
}

// UnarchiveFreelancerHandler restores an archived freelancer
func UnarchiveFreelancerHandler(repo domain.FreelancerRepository) gin.HandlerFunc {
	return flagHandler("unarchive", repo.Unarchive)
}

// DeleteFreelancerHandler removes a freelancer and its children
func DeleteFreelancerHandler(repo domain.FreelancerRepository) gin.HandlerFunc {
	return flagHandler("delete", repo.Delete)
}

// flagHandler runs an id-only mutation and answers 204, or 404 when nothing matched
func flagHandler(operation string, apply func(ctx context.Context, id uint) (bool, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}
		fields := logrus.Fields{"operation": operation, "id": id}
		found, err := apply(c.Request.Context(), id)
		if err != nil {
			respondError(c, err, fields)
			return
		}
		if !found {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"message": msgNotFound})
			return
		}
		actor, _ := middleware.CurrentUserID(c)
		logrus.WithFields(fields).WithField("by", actor).Info("Freelancer " + operation + "d")
		c.Status(http.StatusNoContent)
	}
}
