package tag

import (
	"github.com/gin-gonic/gin"

	"twogether/app/requests"
	"twogether/app/services"
	"twogether/pkg/auth"
	"twogether/pkg/response"
)

// TagsController 标签
type TagsController struct {
	tagService *services.TagService
}

// NewTagsController 创建控制器
func NewTagsController(tagService *services.TagService) *TagsController {
	return &TagsController{tagService: tagService}
}

// Store 创建标签，同名标签直接返回
func (tc *TagsController) Store(c *gin.Context) {
	request, err := requests.ValidateTag(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	tag, err := tc.tagService.Create(c.Request.Context(), auth.CurrentUserID(c), request.Name)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, tag)
}

// Index 当前用户的标签
func (tc *TagsController) Index(c *gin.Context) {
	tags, err := tc.tagService.List(c.Request.Context(), auth.CurrentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Data(c, tags)
}

// Delete 删除标签
func (tc *TagsController) Delete(c *gin.Context) {
	id, err := requests.PathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := tc.tagService.Delete(c.Request.Context(), auth.CurrentUserID(c), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c)
}
