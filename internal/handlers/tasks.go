package handlers

import (
	"net/http"

	"task_manager/internal/models"
	"task_manager/internal/service"

	"github.com/gin-gonic/gin"
)

type createTaskRequest struct {
	Title       string  `json:"title" binding:"required" example:"Buy milk"`
	Description *string `json:"description" example:"2 liters"`
}

// updateTaskRequest is a partial update: absent fields are left unchanged.
type updateTaskRequest struct {
	Title       *string `json:"title" example:"Buy oat milk"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed" example:"true"`
}

// listTasks godoc
// @Summary      List the owner's tasks
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        user_id  path      int  true  "owner id"
// @Success      200      {array}   models.Task
// @Failure      400      {object}  errorResponse
// @Failure      401      {object}  errorResponse
// @Failure      403      {object}  errorResponse
// @Router       /api/{user_id}/tasks [get]
func (h *Handler) listTasks(c *gin.Context) {
	ownerID := c.GetInt(ctxUserID)

	tasks, err := h.services.ListTasks(c.Request.Context(), ownerID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// createTask godoc
// @Summary      Create a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        user_id  path      int                true  "owner id"
// @Param        input    body      createTaskRequest  true  "task"
// @Success      201      {object}  models.Task
// @Failure      400      {object}  errorResponse
// @Failure      401      {object}  errorResponse
// @Failure      403      {object}  errorResponse
// @Router       /api/{user_id}/tasks [post]
func (h *Handler) createTask(c *gin.Context) {
	var input createTaskRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	ownerID := c.GetInt(ctxUserID)
	task, err := h.services.CreateTask(c.Request.Context(), ownerID, service.TaskInput{
		Title:       input.Title,
		Description: input.Description,
	})
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	h.log.Debugw("task_created", "user_id", ownerID, "task_id", task.ID)
	c.JSON(http.StatusCreated, task)
}

// getTask godoc
// @Summary      Get a task
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        user_id  path      int  true  "owner id"
// @Param        id       path      int  true  "task id"
// @Success      200      {object}  models.Task
// @Failure      400      {object}  errorResponse
// @Failure      401      {object}  errorResponse
// @Failure      403      {object}  errorResponse
// @Failure      404      {object}  errorResponse
// @Router       /api/{user_id}/tasks/{id} [get]
func (h *Handler) getTask(c *gin.Context) {
	taskID, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	task, err := h.services.GetTask(c.Request.Context(), c.GetInt(ctxUserID), taskID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// updateTask godoc
// @Summary      Update a task
// @Description  Only the fields present in the body are changed.
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        user_id  path      int                true  "owner id"
// @Param        id       path      int                true  "task id"
// @Param        input    body      updateTaskRequest  true  "fields to change"
// @Success      200      {object}  models.Task
// @Failure      400      {object}  errorResponse
// @Failure      401      {object}  errorResponse
// @Failure      403      {object}  errorResponse
// @Failure      404      {object}  errorResponse
// @Router       /api/{user_id}/tasks/{id} [put]
func (h *Handler) updateTask(c *gin.Context) {
	taskID, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var input updateTaskRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	task, err := h.services.UpdateTask(c.Request.Context(), c.GetInt(ctxUserID), taskID, models.TaskPatch{
		Title:       input.Title,
		Description: input.Description,
		Completed:   input.Completed,
	})
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// deleteTask godoc
// @Summary      Delete a task
// @Tags         tasks
// @Security     BearerAuth
// @Param        user_id  path  int  true  "owner id"
// @Param        id       path  int  true  "task id"
// @Success      204
// @Failure      400      {object}  errorResponse
// @Failure      401      {object}  errorResponse
// @Failure      403      {object}  errorResponse
// @Failure      404      {object}  errorResponse
// @Router       /api/{user_id}/tasks/{id} [delete]
func (h *Handler) deleteTask(c *gin.Context) {
	taskID, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	if err := h.services.DeleteTask(c.Request.Context(), c.GetInt(ctxUserID), taskID); err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
