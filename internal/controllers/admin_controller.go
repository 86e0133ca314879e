package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/famsdev/fams_backend/internal/models"
	"github.com/famsdev/fams_backend/internal/services"
)

type AdminController struct {
	Users *services.UserService
}

type createUserRequest struct {
	FirstName  string `json:"first_name" binding:"required"`
	MiddleName string `json:"middle_name"`
	LastName   string `json:"last_name" binding:"required"`
	ExtName    string `json:"ext_name"`
	Username   string `json:"username"`
	Email      string `json:"email" binding:"omitempty,email"`
	Password   string `json:"password" binding:"required,min=6"`
	Role       string `json:"role" binding:"required"`
	CollegeID  string `json:"college_id"`
	CourseID   string `json:"course_id"`

	HighestEducationalAttainment string `json:"highest_educational_attainment"`
	AcademicRank                 string `json:"academic_rank"`
	StatusOfAppointment          string `json:"status_of_appointment"`
	NumberOfPrep                 int    `json:"number_of_prep"`
	TotalTeachingLoad            int    `json:"total_teaching_load"`
}

func (a *AdminController) CreateUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := &models.User{
		FirstName:  req.FirstName,
		MiddleName: req.MiddleName,
		LastName:   req.LastName,
		ExtName:    req.ExtName,
		Username:   req.Username,
		Email:      req.Email,
		Password:   req.Password,
		Role:       req.Role,
		CollegeID:  req.CollegeID,
		CourseID:   req.CourseID,

		HighestEducationalAttainment: req.HighestEducationalAttainment,
		AcademicRank:                 req.AcademicRank,
		StatusOfAppointment:          req.StatusOfAppointment,
		NumberOfPrep:                 req.NumberOfPrep,
		TotalTeachingLoad:            req.TotalTeachingLoad,
	}
	if err := a.Users.Create(c.Request.Context(), user); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user_id":  user.ID,
		"username": user.Username,
		"name":     user.DisplayName(),
		"role":     user.Role,
		"status":   user.Status,
	})
}

func (a *AdminController) ListUsers(c *gin.Context) {
	var (
		users []*models.User
		err   error
	)
	if role := c.Query("role"); role != "" {
		users, err = a.Users.ListByRole(c.Request.Context(), role)
	} else {
		users, err = a.Users.List(c.Request.Context())
	}
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users, "count": len(users)})
}

func (a *AdminController) GetUser(c *gin.Context) {
	user, err := a.Users.Get(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		fail(c, err)
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, user)
}

type updateUserRequest struct {
	FirstName  *string `json:"first_name"`
	MiddleName *string `json:"middle_name"`
	LastName   *string `json:"last_name"`
	ExtName    *string `json:"ext_name"`
	Email      *string `json:"email" binding:"omitempty,email"`
	Password   string  `json:"password"`
	Role       *string `json:"role"`
	CollegeID  *string `json:"college_id"`
	CourseID   *string `json:"course_id"`

	HighestEducationalAttainment *string `json:"highest_educational_attainment"`
	AcademicRank                 *string `json:"academic_rank"`
	StatusOfAppointment          *string `json:"status_of_appointment"`
	NumberOfPrep                 *int    `json:"number_of_prep"`
	TotalTeachingLoad            *int    `json:"total_teaching_load"`
}

func (a *AdminController) UpdateUser(c *gin.Context) {
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := a.Users.Get(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		fail(c, err)
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	applyString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	applyString(&user.FirstName, req.FirstName)
	applyString(&user.MiddleName, req.MiddleName)
	applyString(&user.LastName, req.LastName)
	applyString(&user.ExtName, req.ExtName)
	applyString(&user.Email, req.Email)
	applyString(&user.CollegeID, req.CollegeID)
	applyString(&user.CourseID, req.CourseID)
	applyString(&user.HighestEducationalAttainment, req.HighestEducationalAttainment)
	applyString(&user.AcademicRank, req.AcademicRank)
	applyString(&user.StatusOfAppointment, req.StatusOfAppointment)
	if req.Role != nil {
		user.Role = *req.Role
	}
	if req.NumberOfPrep != nil {
		user.NumberOfPrep = *req.NumberOfPrep
	}
	if req.TotalTeachingLoad != nil {
		user.TotalTeachingLoad = *req.TotalTeachingLoad
	}

	if err := a.Users.Update(c.Request.Context(), user, req.Password); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

type setStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// SetUserStatus moves an account through the verification lifecycle.
func (a *AdminController) SetUserStatus(c *gin.Context) {
	var req setStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, err := a.Users.SetStatus(c.Request.Context(), c.Param("user_id"), req.Status)
	if err != nil {
		fail(c, err)
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user_id": user.ID, "status": user.Status})
}

func (a *AdminController) DeleteUser(c *gin.Context) {
	existed, err := a.Users.Delete(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		fail(c, err)
		return
	}
	if !existed {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}
