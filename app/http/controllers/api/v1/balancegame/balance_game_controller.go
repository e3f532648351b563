package balancegame

import (
	"github.com/gin-gonic/gin"

	"twogether/app/requests"
	"twogether/app/services"
	"twogether/pkg/auth"
	"twogether/pkg/response"
)

// BalanceGamesController 每日二选一
type BalanceGamesController struct {
	gameService *services.BalanceGameService
}

// NewBalanceGamesController 创建控制器
func NewBalanceGamesController(gameService *services.BalanceGameService) *BalanceGamesController {
	return &BalanceGamesController{gameService: gameService}
}

// Today 今天的题目和双方的选择
func (bc *BalanceGamesController) Today(c *gin.Context) {
	state, err := bc.gameService.Today(c.Request.Context(), auth.CurrentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Data(c, state)
}

// Choose 提交选择
func (bc *BalanceGamesController) Choose(c *gin.Context) {
	gameID, err := requests.PathID(c, "gameId")
	if err != nil {
		response.Error(c, err)
		return
	}
	request, err := requests.ValidateChoice(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	state, err := bc.gameService.Choose(c.Request.Context(), auth.CurrentUserID(c), gameID, request.OptionID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Data(c, state)
}

// History 回答过的题目
func (bc *BalanceGamesController) History(c *gin.Context) {
	query, err := requests.ValidatePageQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	page, err := bc.gameService.History(c.Request.Context(), auth.CurrentUserID(c), query.Cursor, query.PageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Data(c, page)
}
