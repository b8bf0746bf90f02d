package handler

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueEndpoints(t *testing.T) {
	s := newTestServer(t)
	_, alice := s.register(t, "alice")
	x := s.createCard(t, alice, "X")
	y := s.createCard(t, alice, "Y")
	z := s.createCard(t, alice, "Z")

	var last QueueResponse
	for _, id := range []uint{x.ID, y.ID, z.ID} {
		w := s.do(t, http.MethodPost, fmt.Sprintf("/api/v1/users/me/queue/%d", id), alice, nil)
		require.Equal(t, http.StatusOK, w.Code)
		last = decode[QueueResponse](t, w)
	}
	assert.Equal(t, []uint{x.ID, y.ID, z.ID}, last.GameCardIDs)

	w := s.do(t, http.MethodDelete, fmt.Sprintf("/api/v1/users/me/queue/%d", y.ID), alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []uint{x.ID, z.ID}, decode[QueueResponse](t, w).GameCardIDs)

	from, to := 1, 0
	w = s.do(t, http.MethodPut, "/api/v1/users/me/queue/move", alice, MoveInput{From: &from, To: &to})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []uint{z.ID, x.ID}, decode[QueueResponse](t, w).GameCardIDs)

	out := 5
	w = s.do(t, http.MethodPut, "/api/v1/users/me/queue/move", alice, MoveInput{From: &from, To: &out})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPut, "/api/v1/users/me/queue/move", alice, map[string]int{"to": 0})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	views := decode[[]GameCardResponse](t, s.do(t, http.MethodGet, "/api/v1/users/me/queue", alice, nil))
	require.Len(t, views, 2)
	assert.Equal(t, "Z", views[0].Title)
	assert.Equal(t, "X", views[1].Title)

	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodPost, "/api/v1/users/me/queue/999", alice, nil).Code)
	assert.Equal(t, http.StatusUnauthorized, s.do(t, http.MethodGet, "/api/v1/users/me/queue", "", nil).Code)
}

func TestFavoriteEndpointsAreIdempotent(t *testing.T) {
	s := newTestServer(t)
	_, alice := s.register(t, "alice")
	card := s.createCard(t, alice, "Bingo")
	path := fmt.Sprintf("/api/v1/users/me/favorites/%d", card.ID)

	for i := 0; i < 2; i++ {
		w := s.do(t, http.MethodPost, path, alice, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.True(t, decode[map[string]bool](t, w)["is_favorite"])
	}

	favorites := decode[[]GameCardResponse](t, s.do(t, http.MethodGet, "/api/v1/users/me/favorites", alice, nil))
	require.Len(t, favorites, 1)
	assert.True(t, favorites[0].IsFavorite)

	for i := 0; i < 2; i++ {
		w := s.do(t, http.MethodDelete, path, alice, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.False(t, decode[map[string]bool](t, w)["is_favorite"])
	}

	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodPost, "/api/v1/users/me/favorites/999", alice, nil).Code)
}
