package app_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filmorate/internal/filmorate/adapters/memory"
	"filmorate/internal/filmorate/app"
	"filmorate/internal/filmorate/domain/entities"
	"filmorate/internal/filmorate/ports/repositories"
)

type fixture struct {
	users     *memory.UserStore
	films     *memory.FilmStore
	relations *app.RelationshipService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ids := memory.NewIDAllocator()
	users := memory.NewUserStore(ids)
	films := memory.NewFilmStore(ids)

	return &fixture{
		users:     users,
		films:     films,
		relations: app.NewRelationshipService(users, films),
	}
}

func (f *fixture) user(t *testing.T, login string) *entities.User {
	t.Helper()

	user, err := f.users.Create(context.Background(),
		entities.NewUser(login+"@example.com", login, "", time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)
	return user
}

func (f *fixture) film(t *testing.T, name string) *entities.Film {
	t.Helper()

	film, err := f.films.Create(context.Background(),
		entities.NewFilm(name, "description", time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC), 100))
	require.NoError(t, err)
	return film
}

func (f *fixture) likes(t *testing.T, filmID int64) []int64 {
	t.Helper()

	film, err := f.films.GetByID(context.Background(), filmID)
	require.NoError(t, err)
	return film.Likes.Sorted()
}

func (f *fixture) friends(t *testing.T, userID int64) []int64 {
	t.Helper()

	user, err := f.users.GetByID(context.Background(), userID)
	require.NoError(t, err)
	return user.Friends.Sorted()
}

func userIDs(users []*entities.User) []int64 {
	out := make([]int64, 0, len(users))
	for _, u := range users {
		out = append(out, u.ID)
	}
	return out
}

func filmIDs(films []*entities.Film) []int64 {
	out := make([]int64, 0, len(films))
	for _, f := range films {
		out = append(out, f.ID)
	}
	return out
}

func TestRelationshipService_LikeFilm(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	user := f.user(t, "alice")
	film := f.film(t, "Matrix")

	t.Run("like is added once", func(t *testing.T) {
		require.NoError(t, f.relations.LikeFilm(ctx, film.ID, user.ID))
		assert.Equal(t, []int64{user.ID}, f.likes(t, film.ID))

		err := f.relations.LikeFilm(ctx, film.ID, user.ID)
		require.ErrorIs(t, err, entities.ErrConflict)
		assert.ErrorIs(t, err, entities.ErrAlreadyLiked)
		assert.Equal(t, []int64{user.ID}, f.likes(t, film.ID))
	})

	t.Run("unlike succeeds exactly once", func(t *testing.T) {
		require.NoError(t, f.relations.UnlikeFilm(ctx, film.ID, user.ID))
		assert.Empty(t, f.likes(t, film.ID))

		err := f.relations.UnlikeFilm(ctx, film.ID, user.ID)
		require.ErrorIs(t, err, entities.ErrNotFound)
		assert.ErrorIs(t, err, entities.ErrLikeNotFound)
	})

	tests := []struct {
		name   string
		filmID int64
		userID int64
		want   error
	}{
		{name: "unknown film", filmID: 999, userID: user.ID, want: entities.ErrFilmNotFound},
		{name: "unknown user", filmID: film.ID, userID: 999, want: entities.ErrUserNotFound},
		{name: "both unknown reports film", filmID: 998, userID: 999, want: entities.ErrFilmNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := f.relations.LikeFilm(ctx, tt.filmID, tt.userID)
			require.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, entities.ErrNotFound)
		})
	}

	t.Run("unlike on unknown film", func(t *testing.T) {
		assert.ErrorIs(t, f.relations.UnlikeFilm(ctx, 999, user.ID), entities.ErrFilmNotFound)
	})
}

func TestRelationshipService_PopularFilms(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	var users []*entities.User
	for _, login := range []string{"u1", "u2", "u3", "u4", "u5"} {
		users = append(users, f.user(t, login))
	}
	f3 := f.film(t, "F3")
	f2 := f.film(t, "F2")
	f1 := f.film(t, "F1")

	like := func(film *entities.Film, n int) {
		for _, u := range users[:n] {
			require.NoError(t, f.relations.LikeFilm(ctx, film.ID, u.ID))
		}
	}
	like(f1, 3)
	like(f2, 5)
	like(f3, 5)

	tests := []struct {
		name  string
		count int
		want  []int64
	}{
		{name: "ties broken by ascending id", count: 2, want: []int64{f3.ID, f2.ID}},
		{name: "count larger than catalog", count: 10, want: []int64{f3.ID, f2.ID, f1.ID}},
		{name: "single", count: 1, want: []int64{f3.ID}},
		{name: "zero", count: 0, want: []int64{}},
		{name: "negative", count: -5, want: []int64{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			films, err := f.relations.PopularFilms(ctx, tt.count)
			require.NoError(t, err)
			assert.Equal(t, tt.want, filmIDs(films))
		})
	}

	t.Run("empty catalog", func(t *testing.T) {
		films, err := newFixture(t).relations.PopularFilms(ctx, 10)
		require.NoError(t, err)
		assert.Empty(t, films)
	})
}

func TestRelationshipService_Friends(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	a := f.user(t, "a")
	b := f.user(t, "b")

	t.Run("friendship is symmetric", func(t *testing.T) {
		require.NoError(t, f.relations.AddFriend(ctx, a.ID, b.ID))
		assert.Equal(t, []int64{b.ID}, f.friends(t, a.ID))
		assert.Equal(t, []int64{a.ID}, f.friends(t, b.ID))
	})

	t.Run("repeated friendship is a conflict in both directions", func(t *testing.T) {
		assert.ErrorIs(t, f.relations.AddFriend(ctx, a.ID, b.ID), entities.ErrAlreadyFriends)
		assert.ErrorIs(t, f.relations.AddFriend(ctx, b.ID, a.ID), entities.ErrConflict)
	})

	t.Run("self friendship", func(t *testing.T) {
		err := f.relations.AddFriend(ctx, a.ID, a.ID)
		require.ErrorIs(t, err, entities.ErrInvalidArgument)
		assert.ErrorIs(t, err, entities.ErrSelfFriend)
		assert.Equal(t, []int64{b.ID}, f.friends(t, a.ID))
	})

	t.Run("unknown user", func(t *testing.T) {
		assert.ErrorIs(t, f.relations.AddFriend(ctx, a.ID, 999), entities.ErrUserNotFound)
		assert.ErrorIs(t, f.relations.AddFriend(ctx, 999, a.ID), entities.ErrUserNotFound)
		assert.ErrorIs(t, f.relations.RemoveFriend(ctx, a.ID, 999), entities.ErrUserNotFound)
		assert.Equal(t, []int64{b.ID}, f.friends(t, a.ID))
	})

	t.Run("friends of", func(t *testing.T) {
		friends, err := f.relations.FriendsOf(ctx, a.ID)
		require.NoError(t, err)
		require.Len(t, friends, 1)
		assert.Equal(t, "b", friends[0].Login)

		_, err = f.relations.FriendsOf(ctx, 999)
		assert.ErrorIs(t, err, entities.ErrNotFound)
	})

	t.Run("removal clears both sides and is idempotent", func(t *testing.T) {
		require.NoError(t, f.relations.RemoveFriend(ctx, b.ID, a.ID))
		assert.Empty(t, f.friends(t, a.ID))
		assert.Empty(t, f.friends(t, b.ID))

		require.NoError(t, f.relations.RemoveFriend(ctx, a.ID, b.ID))
	})
}

func TestRelationshipService_CommonFriends(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	a := f.user(t, "a")
	b := f.user(t, "b")
	w := f.user(t, "w")
	z := f.user(t, "z")
	y := f.user(t, "y")
	x := f.user(t, "x")

	for _, id := range []int64{x.ID, y.ID, z.ID} {
		require.NoError(t, f.relations.AddFriend(ctx, a.ID, id))
	}
	for _, id := range []int64{y.ID, z.ID, w.ID} {
		require.NoError(t, f.relations.AddFriend(ctx, b.ID, id))
	}

	common, err := f.relations.CommonFriends(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{z.ID, y.ID}, userIDs(common))

	common, err = f.relations.CommonFriends(ctx, a.ID, w.ID)
	require.NoError(t, err)
	assert.Empty(t, common)

	_, err = f.relations.CommonFriends(ctx, a.ID, 999)
	assert.ErrorIs(t, err, entities.ErrUserNotFound)
}

func TestRelationshipService_DanglingFriend(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	a := f.user(t, "a")

	require.NoError(t, f.users.Write(ctx, func(tx repositories.UserWriter) error {
		_, err := tx.AddFriend(a.ID, 404)
		return err
	}))

	_, err := f.relations.FriendsOf(ctx, a.ID)
	require.ErrorIs(t, err, entities.ErrDanglingReference)
	assert.NotErrorIs(t, err, entities.ErrNotFound)
}

func TestRelationshipService_DeleteUser(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u := f.user(t, "u")
	v := f.user(t, "v")
	film := f.film(t, "F")

	require.NoError(t, f.relations.LikeFilm(ctx, film.ID, u.ID))
	require.NoError(t, f.relations.LikeFilm(ctx, film.ID, v.ID))
	require.NoError(t, f.relations.AddFriend(ctx, u.ID, v.ID))

	require.NoError(t, f.relations.DeleteUser(ctx, u.ID))

	assert.Equal(t, []int64{v.ID}, f.likes(t, film.ID))
	assert.Empty(t, f.friends(t, v.ID))
	_, err := f.users.GetByID(ctx, u.ID)
	assert.ErrorIs(t, err, entities.ErrUserNotFound)

	assert.ErrorIs(t, f.relations.DeleteUser(ctx, u.ID), entities.ErrUserNotFound)

	next := f.user(t, "next")
	assert.Greater(t, next.ID, v.ID)
}

func TestRelationshipService_DeleteFilm(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	film := f.film(t, "F")

	require.NoError(t, f.relations.DeleteFilm(ctx, film.ID))
	assert.ErrorIs(t, f.relations.DeleteFilm(ctx, film.ID), entities.ErrFilmNotFound)

	films, err := f.relations.PopularFilms(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, films)
}

// Встречные операции берут блокировки в одном порядке и не должны зависать.
func TestRelationshipService_ConcurrentCrossStore(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	const n = 20
	users := make([]*entities.User, n)
	for i := range users {
		users[i] = f.user(t, "user"+string(rune('a'+i)))
	}
	film := f.film(t, "F")

	var wg sync.WaitGroup
	for i := range users {
		wg.Add(3)
		go func(u *entities.User) {
			defer wg.Done()
			_ = f.relations.LikeFilm(ctx, film.ID, u.ID)
		}(users[i])
		go func(u *entities.User) {
			defer wg.Done()
			_ = f.relations.DeleteUser(ctx, u.ID)
		}(users[i])
		go func() {
			defer wg.Done()
			_, _ = f.relations.PopularFilms(ctx, 5)
		}()
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("cross-store operations deadlocked")
	}

	assert.Empty(t, f.likes(t, film.ID), "every liking user was deleted")
}
