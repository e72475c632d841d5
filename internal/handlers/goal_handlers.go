package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/valeriaulyamaeva/pocket-ledger/internal/database"
	"github.com/valeriaulyamaeva/pocket-ledger/internal/finance"
	"github.com/valeriaulyamaeva/pocket-ledger/internal/validation"
)

const dateLayout = "2006-01-02"

type createGoalRequest struct {
	Name          string            `json:"name" binding:"required,max=100"`
	TargetAmount  validation.Amount `json:"target_amount" binding:"required,gt=0,money"`
	CurrentAmount validation.Amount `json:"current_amount" binding:"omitempty,gte=0,money"`
	TargetDate    string            `json:"target_date" binding:"omitempty,datetime=2006-01-02"`
}

type goalProgressRequest struct {
	Amount validation.Amount `json:"amount"`
}

func GetGoalsHandler(svc *finance.GoalService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			return
		}
		goals, err := svc.List(c.Request.Context(), p.UserID)
		if err != nil {
			_ = c.Error(err)
			return
		}
		c.JSON(http.StatusOK, goals)
	}
}

func CreateGoalHandler(svc *finance.GoalService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			return
		}

		var req createGoalRequest
		if err := validation.BindJSON(c, &req); err != nil {
			respondValidation(c, err)
			return
		}

		in := finance.GoalInput{
			Name:          req.Name,
			TargetAmount:  req.TargetAmount.Value,
			CurrentAmount: req.CurrentAmount.Value,
		}
		if req.TargetDate != "" {
			// already checked by the datetime rule
			d, _ := time.Parse(dateLayout, req.TargetDate)
			in.TargetDate = &d
		}

		goal, err := svc.Create(c.Request.Context(), p.UserID, in)
		if errors.Is(err, finance.ErrInvalidGoal) {
			respondMessage(c, http.StatusBadRequest, "Invalid savings goal")
			return
		}
		if err != nil {
			_ = c.Error(err)
			return
		}
		c.JSON(http.StatusCreated, goal)
	}
}

// UpdateGoalProgressHandler adds the posted amount to the goal's progress.
// Goals belonging to someone else answer 404 like missing ones.
func UpdateGoalProgressHandler(svc *finance.GoalService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			return
		}

		goalID, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil || goalID <= 0 {
			respondMessage(c, http.StatusNotFound, "Savings goal not found")
			return
		}

		var req goalProgressRequest
		if err := c.ShouldBindJSON(&req); err != nil || !req.Amount.IsMoney() {
			respondMessage(c, http.StatusBadRequest, "Invalid amount")
			return
		}

		goal, err := svc.AddProgress(c.Request.Context(), p.UserID, goalID, req.Amount.Value)
		switch {
		case errors.Is(err, database.ErrNotFound):
			respondMessage(c, http.StatusNotFound, "Savings goal not found")
		case errors.Is(err, finance.ErrInvalidAmount):
			respondMessage(c, http.StatusBadRequest, "Invalid amount")
		case errors.Is(err, database.ErrNegativeProgress):
			respondMessage(c, http.StatusBadRequest, "Savings goal progress cannot drop below zero")
		case err != nil:
			_ = c.Error(err)
		default:
			c.JSON(http.StatusOK, goal)
		}
	}
}
