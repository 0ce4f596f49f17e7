package model

import (
	"time"
)

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

type User struct {
	ID        int       `json:"id" db:"id"`
	Username  string    `json:"username" db:"username"`
	Password  string    `json:"-" db:"password"`
	Email     string    `json:"email" db:"email"`
	Role      Role      `json:"role" db:"role"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

type Book struct {
	ID        int       `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Author    string    `json:"author" db:"author"`
	ISBN      string    `json:"isbn" db:"isbn"`
	Category  string    `json:"category" db:"category"`
	Total     int       `json:"total" db:"total"`
	Available int       `json:"available" db:"available"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// OnLoan is the number of copies currently held by patrons.
func (b Book) OnLoan() int {
	return b.Total - b.Available
}

type BookInput struct {
	Title    string
	Author   string
	ISBN     string
	Category string
	Total    int
}

type BorrowStatus string

const (
	StatusActive   BorrowStatus = "active"
	StatusReturned BorrowStatus = "returned"
)

func (s BorrowStatus) Valid() bool {
	return s == StatusActive || s == StatusReturned
}

type BorrowRecord struct {
	ID         int          `json:"id" db:"id"`
	UserID     int          `json:"userId" db:"user_id"`
	BookID     int          `json:"bookId" db:"book_id"`
	SeatID     *int         `json:"seatId,omitempty" db:"seat_id"`
	BorrowDate time.Time    `json:"borrowDate" db:"borrow_date"`
	DueDate    time.Time    `json:"dueDate" db:"due_date"`
	ReturnDate *time.Time   `json:"returnDate,omitempty" db:"return_date"`
	Status     BorrowStatus `json:"status" db:"status"`
	Renewed    bool         `json:"renewed" db:"renewed"`
}

// Overdue reports whether an active loan is past its due date on the day of now.
func (r BorrowRecord) Overdue(now time.Time) bool {
	if r.Status != StatusActive {
		return false
	}
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	dy, dm, dd := r.DueDate.Date()
	due := time.Date(dy, dm, dd, 0, 0, 0, 0, time.UTC)
	return due.Before(today)
}

// BorrowDetails is a borrow record joined with its patron and book.
type BorrowDetails struct {
	BorrowRecord
	Username string `json:"username" db:"username"`
	Title    string `json:"title" db:"title"`
	Author   string `json:"author" db:"author"`
	ISBN     string `json:"isbn" db:"isbn"`
	Overdue  bool   `json:"overdue" db:"overdue"`
}

type BorrowRequest struct {
	UserID int
	BookID int
	SeatID *int
}

type BorrowResult struct {
	Record BorrowRecord `json:"record"`
	Title  string       `json:"title"`
}

type SeatStatus string

const (
	SeatFree     SeatStatus = "free"
	SeatReserved SeatStatus = "reserved"
)

type Seat struct {
	ID         int        `json:"id" db:"id"`
	RoomNumber string     `json:"roomNumber" db:"room_number"`
	SeatNumber string     `json:"seatNumber" db:"seat_number"`
	Status     SeatStatus `json:"status" db:"status"`
}

type Paging struct {
	Page          int `json:"page"`
	PageSize      int `json:"pageSize"`
	TotalElements int `json:"totalElements"`
	TotalPages    int `json:"totalPages"`
}

func NewPaging(page, size, total int) Paging {
	p := Paging{Page: page, PageSize: size, TotalElements: total}
	if size > 0 {
		p.TotalPages = (total + size - 1) / size
	}
	return p
}

// Offset of the first row of page; pages start at 1.
func Offset(page, size int) uint64 {
	if page < 1 {
		page = 1
	}
	return uint64((page - 1) * size)
}

type BookFilter struct {
	Keyword       string
	Author        string
	Category      string
	ISBN          string
	OnlyAvailable bool
	Page          int
	Size          int
}

type ListBooks struct {
	Paging `json:",inline"`
	Items  []Book `json:"items"`
}

type BorrowFilter struct {
	Keyword string
	Status  BorrowStatus
	User    string
	UserID  int
	Page    int
	Size    int
}

type ListBorrows struct {
	Paging `json:",inline"`
	Items  []BorrowDetails `json:"items"`
}

type ListUsers struct {
	Paging `json:",inline"`
	Items  []User `json:"items"`
}

type CatalogStats struct {
	TotalBooks     int `json:"totalBooks"`
	TotalStock     int `json:"totalStock"`
	AvailableStock int `json:"availableStock"`
	Categories     int `json:"categories"`
}

type BorrowStats struct {
	TotalBorrows   int `json:"totalBorrows"`
	ActiveBorrows  int `json:"activeBorrows"`
	TodayReturns   int `json:"todayReturns"`
	OverdueBorrows int `json:"overdueBorrows"`
}

type UserStats struct {
	TotalUsers  int `json:"totalUsers"`
	Admins      int `json:"admins"`
	ActiveUsers int `json:"activeUsers"`
}

type PatronStats struct {
	ActiveLoans     int `json:"activeLoans"`
	TotalLoans      int `json:"totalLoans"`
	RemainingLoans  int `json:"remainingLoans"`
	AvailableTitles int `json:"availableTitles"`
}

type PopularBook struct {
	ID          int    `json:"id" db:"id"`
	Title       string `json:"title" db:"title"`
	Author      string `json:"author" db:"author"`
	BorrowCount int    `json:"borrowCount" db:"borrow_count"`
}

type Dashboard struct {
	TotalBooks     int             `json:"totalBooks"`
	AvailableBooks int             `json:"availableBooks"`
	ActiveBorrows  int             `json:"activeBorrows"`
	PopularBooks   []PopularBook   `json:"popularBooks"`
	RecentBorrows  []BorrowDetails `json:"recentBorrows,omitempty"`
}

type BookPage struct {
	ListBooks  `json:",inline"`
	Stats      CatalogStats `json:"stats"`
	Categories []string     `json:"categories"`
}

type SearchPage struct {
	ListBooks `json:",inline"`
	Stats     PatronStats `json:"stats"`
}

type BorrowPage struct {
	ListBorrows `json:",inline"`
	Stats       BorrowStats `json:"stats"`
}

type UserPage struct {
	ListUsers `json:",inline"`
	Stats     UserStats `json:"stats"`
}

type LoanEventType string

const (
	EventBorrow LoanEventType = "borrow"
	EventReturn LoanEventType = "return"
	EventRenew  LoanEventType = "renew"
)

type LoanEvent struct {
	Type      LoanEventType `json:"type"`
	RecordID  int           `json:"recordId"`
	UserID    int           `json:"userId"`
	BookID    int           `json:"bookId"`
	Timestamp time.Time     `json:"timestamp"`
}
