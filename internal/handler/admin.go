package handler

import (
	"errors"
	"log"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/user/movieapi/internal/service"
	"github.com/user/movieapi/internal/utils"
)

// AdminStats 管理后台统计
func (h *Handler) AdminStats(c *gin.Context) {
	stats, err := h.Stats.AdminStats()
	if err != nil {
		log.Printf("[Admin] 统计汇总失败: %v", err)
		utils.InternalServerError(c, "")
		return
	}

	utils.Success(c, stats)
}

// AdminUsers 用户列表（管理员）
func (h *Handler) AdminUsers(c *gin.Context) {
	limit, offset := pageParams(c)
	users, err := h.Repos.User.List(limit, offset)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}

	utils.Success(c, users)
}

// AdminDeleteUser 删除用户（管理员）
func (h *Handler) AdminDeleteUser(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "无效的用户 ID")
		return
	}

	if err := h.Repos.User.Delete(id); err != nil {
		utils.InternalServerError(c, "")
		return
	}

	utils.SuccessWithMessage(c, "已删除", nil)
}

// UploadVideo 上传视频文件（管理员）
func (h *Handler) UploadVideo(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		utils.BadRequest(c, "缺少上传文件")
		return
	}

	result, err := h.Upload.SaveVideo(file)
	if err != nil {
		if errors.Is(err, service.ErrInvalidFileType) {
			utils.BadRequest(c, err.Error())
			return
		}
		log.Printf("[Admin] 视频上传失败: %v", err)
		utils.InternalServerError(c, "")
		return
	}

	utils.Success(c, result)
}

// UploadImage 上传图片文件（管理员）
func (h *Handler) UploadImage(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		utils.BadRequest(c, "缺少上传文件")
		return
	}

	result, err := h.Upload.SaveImage(file)
	if err != nil {
		if errors.Is(err, service.ErrInvalidFileType) {
			utils.BadRequest(c, err.Error())
			return
		}
		log.Printf("[Admin] 图片上传失败: %v", err)
		utils.InternalServerError(c, "")
		return
	}

	utils.Success(c, result)
}
