package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mikiasgoitom/Convene/internal/domain/entity"
	"github.com/mikiasgoitom/Convene/internal/handler/http/dto"
	"github.com/mikiasgoitom/Convene/internal/handler/http/middleware"
	usecasecontract "github.com/mikiasgoitom/Convene/internal/usecase/contract"
)

type ConversationHandler struct {
	conversationUsecase usecasecontract.IConversationUseCase
}

func NewConversationHandler(uc usecasecontract.IConversationUseCase) *ConversationHandler {
	return &ConversationHandler{conversationUsecase: uc}
}

// PostMessage posts as the authenticated caller.
func (h *ConversationHandler) PostMessage(c *gin.Context) {
	authorID, ok := middleware.UserIDFrom(c)
	if !ok {
		RespondError(c, entity.ErrUnauthenticated)
		return
	}

	var req dto.PostMessageRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}

	msg, err := h.conversationUsecase.PostMessage(c.Request.Context(), usecasecontract.PostMessageInput{
		AuthorID:       authorID,
		ConversationID: req.ConversationID,
		Participants:   req.Participants,
		Body:           req.Body,
	})
	if err != nil {
		RespondError(c, err)
		return
	}
	SuccessHandler(c, http.StatusCreated, dto.ToMessageDTO(*msg))
}

// ListConversations lists the caller's conversations.
func (h *ConversationHandler) ListConversations(c *gin.Context) {
	userID, ok := middleware.UserIDFrom(c)
	if !ok {
		RespondError(c, entity.ErrUnauthenticated)
		return
	}

	convs, err := h.conversationUsecase.ListConversations(c.Request.Context(), userID)
	if err != nil {
		RespondError(c, err)
		return
	}
	out := make([]dto.ConversationDTO, 0, len(convs))
	for _, conv := range convs {
		out = append(out, dto.ToConversationDTO(*conv))
	}
	SuccessHandler(c, http.StatusOK, dto.ConversationsResponse{Conversations: out})
}

// GetThread returns a conversation's messages to one of its participants.
func (h *ConversationHandler) GetThread(c *gin.Context) {
	userID, ok := middleware.UserIDFrom(c)
	if !ok {
		RespondError(c, entity.ErrUnauthenticated)
		return
	}

	conv, msgs, err := h.conversationUsecase.GetThreadForParticipant(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		RespondError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.ToThreadResponse(*conv, msgs))
}
