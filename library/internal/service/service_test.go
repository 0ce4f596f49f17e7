package service_test

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/JQ-Origin/Library-Document-Borrowing-System/library/config"
	"github.com/JQ-Origin/Library-Document-Borrowing-System/library/internal/errs"
	"github.com/JQ-Origin/Library-Document-Borrowing-System/library/internal/model"
	repo_mocks "github.com/JQ-Origin/Library-Document-Borrowing-System/library/internal/repository/mocks"
	"github.com/JQ-Origin/Library-Document-Borrowing-System/library/internal/service"
	"github.com/JQ-Origin/Library-Document-Borrowing-System/pkg/circuit_breaker"
	"github.com/JQ-Origin/Library-Document-Borrowing-System/pkg/kafka"
)

var libraryCfg = config.Library{
	LoanPeriodDays:  30,
	MaxActiveLoans:  5,
	DefaultPassword: "123456",
	CatalogPageSize: 10,
	SearchPageSize:  12,
	BorrowPageSize:  15,
	UserPageSize:    10,
}

type recordingEnqueuer struct {
	mu     sync.Mutex
	topics []string
	events []model.LoanEvent
	err    error
}

func (q *recordingEnqueuer) Enqueue(topic string, v any) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.topics = append(q.topics, topic)
	q.events = append(q.events, v.(model.LoanEvent))
	return q.err
}

func newService(t *testing.T, cfg config.Library) (*service.Service, *repo_mocks.MockRepository, *recordingEnqueuer) {
	t.Helper()
	c := gomock.NewController(t)
	repo := repo_mocks.NewMockRepository(c)
	events := &recordingEnqueuer{}
	return service.NewService(repo, events, cfg, zap.NewNop()), repo, events
}

func TestService_Authenticate(t *testing.T) {
	t.Parallel()
	hash, err := service.HashPassword("secret")
	require.NoError(t, err)
	stored := model.User{ID: 7, Username: "alice", Password: hash, Role: model.RoleUser}

	tests := []struct {
		name     string
		password string
		mock     func(r *repo_mocks.MockRepository)
		wantErr  error
	}{
		{
			name:     "ok",
			password: "secret",
			mock: func(r *repo_mocks.MockRepository) {
				r.EXPECT().GetUserByUsername(gomock.Any(), "alice").Return(stored, nil)
			},
		},
		{
			name:     "wrong password",
			password: "nope",
			mock: func(r *repo_mocks.MockRepository) {
				r.EXPECT().GetUserByUsername(gomock.Any(), "alice").Return(stored, nil)
			},
			wantErr: errs.ErrInvalidCredentials,
		},
		{
			name:     "unknown user",
			password: "secret",
			mock: func(r *repo_mocks.MockRepository) {
				r.EXPECT().GetUserByUsername(gomock.Any(), "alice").Return(model.User{}, errs.ErrNotFound)
			},
			wantErr: errs.ErrInvalidCredentials,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc, repo, _ := newService(t, libraryCfg)
			tt.mock(repo)

			user, err := svc.Authenticate(context.Background(), "alice", tt.password)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, 7, user.ID)
		})
	}
}

func TestService_RegisterHashesPassword(t *testing.T) {
	t.Parallel()
	svc, repo, _ := newService(t, libraryCfg)

	repo.EXPECT().CreateUser(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, u model.User) (model.User, error) {
			require.Equal(t, "bob", u.Username)
			require.Equal(t, model.RoleUser, u.Role)
			require.NotEqual(t, "pa55word", u.Password)
			require.NoError(t, service.ComparePassword(u.Password, "pa55word"))
			u.ID = 3
			return u, nil
		})

	user, err := svc.Register(context.Background(), "bob", "pa55word", "bob@example.com")
	require.NoError(t, err)
	require.Equal(t, 3, user.ID)
}

func TestService_RegisterPasswordTooLong(t *testing.T) {
	t.Parallel()
	svc, _, _ := newService(t, libraryCfg)

	_, err := svc.Register(context.Background(), "bob", strings.Repeat("密", 30), "")
	require.ErrorIs(t, err, errs.ErrPasswordTooLong)
}

func TestService_EnsureAdmin(t *testing.T) {
	t.Parallel()
	cfg := libraryCfg
	cfg.AdminUsername = "root"
	cfg.AdminPassword = "toor"

	t.Run("disabled", func(t *testing.T) {
		t.Parallel()
		svc, _, _ := newService(t, libraryCfg)
		require.NoError(t, svc.EnsureAdmin(context.Background()))
	})
	t.Run("exists", func(t *testing.T) {
		t.Parallel()
		svc, repo, _ := newService(t, cfg)
		repo.EXPECT().GetUserByUsername(gomock.Any(), "root").Return(model.User{ID: 1, Role: model.RoleAdmin}, nil)
		require.NoError(t, svc.EnsureAdmin(context.Background()))
	})
	t.Run("created", func(t *testing.T) {
		t.Parallel()
		svc, repo, _ := newService(t, cfg)
		repo.EXPECT().GetUserByUsername(gomock.Any(), "root").Return(model.User{}, errs.ErrNotFound)
		repo.EXPECT().CreateUser(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, u model.User) (model.User, error) {
				require.Equal(t, model.RoleAdmin, u.Role)
				require.NoError(t, service.ComparePassword(u.Password, "toor"))
				return u, nil
			})
		require.NoError(t, svc.EnsureAdmin(context.Background()))
	})
}

func TestService_CreateBookDuplicateISBN(t *testing.T) {
	t.Parallel()
	svc, repo, _ := newService(t, libraryCfg)
	in := model.BookInput{Title: "t", Author: "a", ISBN: "978-1", Category: "c", Total: 1}

	repo.EXPECT().ISBNExists(gomock.Any(), "978-1", 0).Return(true, nil)

	_, err := svc.CreateBook(context.Background(), in)
	require.ErrorIs(t, err, errs.ErrDuplicateISBN)
}

func TestService_UpdateBookExcludesItself(t *testing.T) {
	t.Parallel()
	svc, repo, _ := newService(t, libraryCfg)
	in := model.BookInput{Title: "t", Author: "a", ISBN: "978-1", Category: "c", Total: 4}

	gomock.InOrder(
		repo.EXPECT().ISBNExists(gomock.Any(), "978-1", 9).Return(false, nil),
		repo.EXPECT().UpdateBook(gomock.Any(), 9, in).Return(model.Book{ID: 9, Total: 4, Available: 2}, nil),
	)

	book, err := svc.UpdateBook(context.Background(), 9, in)
	require.NoError(t, err)
	require.Equal(t, 2, book.Available)
}

func TestService_BorrowPublishesEvent(t *testing.T) {
	t.Parallel()
	svc, repo, events := newService(t, libraryCfg)
	req := model.BorrowRequest{UserID: 2, BookID: 11}

	repo.EXPECT().Borrow(gomock.Any(), req, 5, 30).
		Return(model.BorrowResult{Record: model.BorrowRecord{ID: 40, UserID: 2, BookID: 11, Status: model.StatusActive}, Title: "Dune"}, nil)

	res, err := svc.Borrow(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, "Dune", res.Title)
	require.Equal(t, []string{kafka.LoanTopic}, events.topics)
	require.Len(t, events.events, 1)
	require.Equal(t, model.EventBorrow, events.events[0].Type)
	require.Equal(t, 40, events.events[0].RecordID)
}

func TestService_BorrowRejectedPublishesNothing(t *testing.T) {
	t.Parallel()
	svc, repo, events := newService(t, libraryCfg)
	req := model.BorrowRequest{UserID: 2, BookID: 11}

	repo.EXPECT().Borrow(gomock.Any(), req, 5, 30).Return(model.BorrowResult{}, errs.ErrNoStock)

	_, err := svc.Borrow(context.Background(), req)
	require.ErrorIs(t, err, errs.ErrNoStock)
	require.Empty(t, events.events)
}

func TestService_PublishFailureIsNotSurfaced(t *testing.T) {
	t.Parallel()
	svc, repo, events := newService(t, libraryCfg)
	events.err = errors.New("broker down")

	repo.EXPECT().Return(gomock.Any(), 40).Return(model.BorrowRecord{ID: 40, Status: model.StatusReturned}, nil)
	repo.EXPECT().Renew(gomock.Any(), 41, 30).Return(model.BorrowRecord{ID: 41, Renewed: true}, nil)

	_, err := svc.Return(context.Background(), 40)
	require.NoError(t, err)
	_, err = svc.Renew(context.Background(), 41)
	require.NoError(t, err)
	require.Len(t, events.events, 2)
	require.Equal(t, model.EventRenew, events.events[1].Type)
}

func TestService_BrokerOutageSuspendsEvents(t *testing.T) {
	t.Parallel()
	cfg := libraryCfg
	cfg.Events = circuit_breaker.Settings{Window: 4, MinCalls: 2, FailureRatio: 0.5, OpenTimeout: time.Hour, RecoveryCalls: 1}
	core, logs := observer.New(zap.InfoLevel)
	c := gomock.NewController(t)
	repo := repo_mocks.NewMockRepository(c)
	events := &recordingEnqueuer{err: errors.New("broker down")}
	svc := service.NewService(repo, events, cfg, zap.New(core))

	repo.EXPECT().Return(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, id int) (model.BorrowRecord, error) {
			return model.BorrowRecord{ID: id, Status: model.StatusReturned}, nil
		}).Times(5)

	for id := 1; id <= 5; id++ {
		_, err := svc.Return(context.Background(), id)
		require.NoError(t, err)
	}
	// two failures open the breaker; the rest never reach the producer
	require.Len(t, events.events, 2)
	require.Equal(t, 2, logs.FilterMessage("publish loan event").Len())
	require.Equal(t, 1, logs.FilterMessage("loan events suspended").Len())
}

func TestService_Search(t *testing.T) {
	t.Parallel()
	svc, repo, _ := newService(t, libraryCfg)

	repo.EXPECT().ListBooks(gomock.Any(), model.BookFilter{Keyword: "go", OnlyAvailable: true, Page: 1, Size: 12}).
		Return(model.ListBooks{Paging: model.NewPaging(1, 12, 1), Items: []model.Book{{ID: 1, Available: 1}}}, nil)
	repo.EXPECT().PatronStats(gomock.Any(), 2).
		Return(model.PatronStats{ActiveLoans: 3, TotalLoans: 8, AvailableTitles: 20}, nil)

	page, err := svc.Search(context.Background(), 2, "go", 0)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	require.Equal(t, model.PatronStats{ActiveLoans: 3, TotalLoans: 8, RemainingLoans: 2, AvailableTitles: 20}, page.Stats)
}

func TestService_PatronStatsNeverNegative(t *testing.T) {
	t.Parallel()
	svc, repo, _ := newService(t, libraryCfg)
	repo.EXPECT().PatronStats(gomock.Any(), 2).Return(model.PatronStats{ActiveLoans: 7}, nil)

	stats, err := svc.PatronStats(context.Background(), 2)
	require.NoError(t, err)
	require.Zero(t, stats.RemainingLoans)
}

func TestService_Dashboard(t *testing.T) {
	t.Parallel()
	popular := []model.PopularBook{{ID: 1, Title: "Dune", BorrowCount: 9}}

	expectCommon := func(r *repo_mocks.MockRepository) {
		r.EXPECT().CatalogStats(gomock.Any()).Return(model.CatalogStats{TotalStock: 30, AvailableStock: 21}, nil)
		r.EXPECT().BorrowStats(gomock.Any()).Return(model.BorrowStats{ActiveBorrows: 9}, nil)
		r.EXPECT().PopularBooks(gomock.Any(), 5).Return(popular, nil)
	}

	t.Run("admin", func(t *testing.T) {
		t.Parallel()
		svc, repo, _ := newService(t, libraryCfg)
		expectCommon(repo)

		dash, err := svc.Dashboard(context.Background(), 1, model.RoleAdmin)
		require.NoError(t, err)
		require.Equal(t, model.Dashboard{TotalBooks: 30, AvailableBooks: 21, ActiveBorrows: 9, PopularBooks: popular}, dash)
	})
	t.Run("patron", func(t *testing.T) {
		t.Parallel()
		svc, repo, _ := newService(t, libraryCfg)
		expectCommon(repo)
		recent := []model.BorrowDetails{{Title: "Dune"}}
		repo.EXPECT().ListBorrows(gomock.Any(), model.BorrowFilter{UserID: 2, Page: 1, Size: 5}).
			Return(model.ListBorrows{Items: recent}, nil)

		dash, err := svc.Dashboard(context.Background(), 2, model.RoleUser)
		require.NoError(t, err)
		require.Equal(t, recent, dash.RecentBorrows)
	})
	t.Run("error", func(t *testing.T) {
		t.Parallel()
		svc, repo, _ := newService(t, libraryCfg)
		repo.EXPECT().CatalogStats(gomock.Any()).Return(model.CatalogStats{}, errors.New("db down"))
		repo.EXPECT().BorrowStats(gomock.Any()).Return(model.BorrowStats{}, nil).AnyTimes()
		repo.EXPECT().PopularBooks(gomock.Any(), 5).Return(nil, nil).AnyTimes()

		_, err := svc.Dashboard(context.Background(), 1, model.RoleAdmin)
		require.EqualError(t, err, "db down")
	})
}

func TestService_BookPageUsesFixedSize(t *testing.T) {
	t.Parallel()
	svc, repo, _ := newService(t, libraryCfg)

	repo.EXPECT().ListBooks(gomock.Any(), model.BookFilter{Category: "fiction", Page: 3, Size: 10}).
		Return(model.ListBooks{Paging: model.NewPaging(3, 10, 25)}, nil)
	repo.EXPECT().CatalogStats(gomock.Any()).Return(model.CatalogStats{TotalBooks: 25}, nil)
	repo.EXPECT().Categories(gomock.Any()).Return([]string{"fiction"}, nil)

	page, err := svc.BookPage(context.Background(), model.BookFilter{Category: "fiction", Page: 3, Size: 500})
	require.NoError(t, err)
	require.Equal(t, 3, page.TotalPages)
	require.Equal(t, []string{"fiction"}, page.Categories)
}

func TestService_ResetPassword(t *testing.T) {
	t.Parallel()
	svc, repo, _ := newService(t, libraryCfg)

	repo.EXPECT().SetPassword(gomock.Any(), 5, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ int, hash string) error {
			require.NoError(t, service.ComparePassword(hash, "123456"))
			return nil
		})

	require.NoError(t, svc.ResetPassword(context.Background(), 5))
}

func TestService_UpdateProfileKeepsPassword(t *testing.T) {
	t.Parallel()
	svc, repo, _ := newService(t, libraryCfg)

	repo.EXPECT().UpdateProfile(gomock.Any(), 5, "new@example.com", "").Return(model.User{ID: 5, Email: "new@example.com"}, nil)

	user, err := svc.UpdateProfile(context.Background(), 5, "new@example.com", "")
	require.NoError(t, err)
	require.Equal(t, "new@example.com", user.Email)
}
