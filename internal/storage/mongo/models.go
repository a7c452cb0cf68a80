package mongo

import "github.com/arefin/messmate/internal/models"

// Document mirrors of the domain models. Kept separate so bson layout can
// evolve without touching the domain types.

type userDoc struct {
	ID           string `bson:"_id"`
	Email        string `bson:"email"`
	DisplayName  string `bson:"display_name"`
	PasswordHash string `bson:"password_hash"`
	CreatedAt    int64  `bson:"created_at"`
	UpdatedAt    int64  `bson:"updated_at"`
}

func toUserDoc(u *models.User) *userDoc {
	return &userDoc{
		ID: u.ID, Email: u.Email, DisplayName: u.DisplayName,
		PasswordHash: u.PasswordHash, CreatedAt: u.CreatedAt, UpdatedAt: u.UpdatedAt,
	}
}

func (d *userDoc) domain() *models.User {
	return &models.User{
		ID: d.ID, Email: d.Email, DisplayName: d.DisplayName,
		PasswordHash: d.PasswordHash, CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt,
	}
}

type messDoc struct {
	ID        string `bson:"_id"`
	Name      string `bson:"name"`
	CreatedAt int64  `bson:"created_at"`
}

func (d *messDoc) domain() *models.Mess {
	return &models.Mess{ID: d.ID, Name: d.Name, CreatedAt: d.CreatedAt}
}

type memberDoc struct {
	ID       string `bson:"_id"`
	MessID   string `bson:"mess_id"`
	Name     string `bson:"name"`
	Email    string `bson:"email"`
	Role     string `bson:"role"`
	JoinDate string `bson:"join_date"`
}

func toMemberDoc(m *models.Member) *memberDoc {
	return &memberDoc{
		ID: m.ID, MessID: m.MessID, Name: m.Name, Email: m.Email,
		Role: string(m.Role), JoinDate: m.JoinDate,
	}
}

func (d *memberDoc) domain() models.Member {
	return models.Member{
		ID: d.ID, MessID: d.MessID, Name: d.Name, Email: d.Email,
		Role: models.Role(d.Role), JoinDate: d.JoinDate,
	}
}

type depositDoc struct {
	ID          string  `bson:"_id"`
	MessID      string  `bson:"mess_id"`
	MemberID    string  `bson:"member_id"`
	MemberName  string  `bson:"member_name"`
	MemberEmail string  `bson:"member_email"`
	Amount      float64 `bson:"amount"`
	Date        string  `bson:"date"`
}

func toDepositDoc(d *models.Deposit) *depositDoc {
	return &depositDoc{
		ID: d.ID, MessID: d.MessID, MemberID: d.MemberID, MemberName: d.MemberName,
		MemberEmail: d.MemberEmail, Amount: d.Amount, Date: d.Date,
	}
}

func (d *depositDoc) domain() models.Deposit {
	return models.Deposit{
		ID: d.ID, MessID: d.MessID, MemberID: d.MemberID, MemberName: d.MemberName,
		MemberEmail: d.MemberEmail, Amount: d.Amount, Date: d.Date,
	}
}

// expenseDoc backs both the meal-expense and shared-expense collections;
// the two record shapes are identical and differ only in split semantics.
type expenseDoc struct {
	ID          string  `bson:"_id"`
	MessID      string  `bson:"mess_id"`
	Date        string  `bson:"date"`
	Amount      float64 `bson:"amount"`
	Description string  `bson:"description"`
	Category    string  `bson:"category"`
}

func toExpenseDoc(e *models.Expense) *expenseDoc {
	return &expenseDoc{ID: e.ID, MessID: e.MessID, Date: e.Date, Amount: e.Amount, Description: e.Description, Category: e.Category}
}

func toSharedExpenseDoc(e *models.SharedExpense) *expenseDoc {
	return &expenseDoc{ID: e.ID, MessID: e.MessID, Date: e.Date, Amount: e.Amount, Description: e.Description, Category: e.Category}
}

func (d *expenseDoc) expense() models.Expense {
	return models.Expense{ID: d.ID, MessID: d.MessID, Date: d.Date, Amount: d.Amount, Description: d.Description, Category: d.Category}
}

func (d *expenseDoc) sharedExpense() models.SharedExpense {
	return models.SharedExpense{ID: d.ID, MessID: d.MessID, Date: d.Date, Amount: d.Amount, Description: d.Description, Category: d.Category}
}

type mealCountDoc struct {
	ID         string `bson:"_id"`
	MessID     string `bson:"mess_id"`
	Date       string `bson:"date"`
	MemberID   string `bson:"member_id"`
	MemberName string `bson:"member_name"`
	Breakfast  int    `bson:"breakfast"`
	Lunch      int    `bson:"lunch"`
	Dinner     int    `bson:"dinner"`
	Total      int    `bson:"total"`
}

func toMealCountDoc(m *models.MealCount) *mealCountDoc {
	return &mealCountDoc{
		ID: m.ID, MessID: m.MessID, Date: m.Date, MemberID: m.MemberID,
		MemberName: m.MemberName, Breakfast: m.Breakfast, Lunch: m.Lunch,
		Dinner: m.Dinner, Total: m.Total,
	}
}

func (d *mealCountDoc) domain() models.MealCount {
	return models.MealCount{
		ID: d.ID, MessID: d.MessID, Date: d.Date, MemberID: d.MemberID,
		MemberName: d.MemberName, Breakfast: d.Breakfast, Lunch: d.Lunch,
		Dinner: d.Dinner, Total: d.Total,
	}
}

type debtRequestDoc struct {
	ID        string  `bson:"_id"`
	MessID    string  `bson:"mess_id"`
	FromID    string  `bson:"from_id"`
	FromName  string  `bson:"from_name"`
	FromEmail string  `bson:"from_email"`
	ToID      string  `bson:"to_id"`
	ToName    string  `bson:"to_name"`
	ToEmail   string  `bson:"to_email"`
	Amount    float64 `bson:"amount"`
	Date      string  `bson:"date"`
	Status    string  `bson:"status"`
}

func toDebtRequestDoc(r *models.DebtRequest) *debtRequestDoc {
	return &debtRequestDoc{
		ID: r.ID, MessID: r.MessID,
		FromID: r.FromID, FromName: r.FromName, FromEmail: r.FromEmail,
		ToID: r.ToID, ToName: r.ToName, ToEmail: r.ToEmail,
		Amount: r.Amount, Date: r.Date, Status: string(r.Status),
	}
}

func (d *debtRequestDoc) domain() models.DebtRequest {
	return models.DebtRequest{
		ID: d.ID, MessID: d.MessID,
		FromID: d.FromID, FromName: d.FromName, FromEmail: d.FromEmail,
		ToID: d.ToID, ToName: d.ToName, ToEmail: d.ToEmail,
		Amount: d.Amount, Date: d.Date, Status: models.DebtRequestStatus(d.Status),
	}
}

type debtDoc struct {
	ID     string  `bson:"_id"`
	MessID string  `bson:"mess_id"`
	FromID string  `bson:"from_id"`
	ToID   string  `bson:"to_id"`
	Amount float64 `bson:"amount"`
	Date   string  `bson:"date"`
}

func toDebtDoc(d *models.Debt) *debtDoc {
	return &debtDoc{ID: d.ID, MessID: d.MessID, FromID: d.FromID, ToID: d.ToID, Amount: d.Amount, Date: d.Date}
}

func (d *debtDoc) domain() models.Debt {
	return models.Debt{ID: d.ID, MessID: d.MessID, FromID: d.FromID, ToID: d.ToID, Amount: d.Amount, Date: d.Date}
}

type taskDoc struct {
	ID         string `bson:"_id"`
	MessID     string `bson:"mess_id"`
	Name       string `bson:"name"`
	AssignedTo string `bson:"assigned_to"`
	DueDate    string `bson:"due_date"`
	Status     string `bson:"status"`
}

func toTaskDoc(t *models.Task) *taskDoc {
	return &taskDoc{ID: t.ID, MessID: t.MessID, Name: t.Name, AssignedTo: t.AssignedTo, DueDate: t.DueDate, Status: string(t.Status)}
}

func (d *taskDoc) domain() models.Task {
	return models.Task{ID: d.ID, MessID: d.MessID, Name: d.Name, AssignedTo: d.AssignedTo, DueDate: d.DueDate, Status: models.TaskStatus(d.Status)}
}

type noticeDoc struct {
	ID          string `bson:"_id"`
	MessID      string `bson:"mess_id"`
	Message     string `bson:"message"`
	Author      string `bson:"author"`
	AuthorEmail string `bson:"author_email"`
	CreatedAt   int64  `bson:"created_at"`
}

func toNoticeDoc(n *models.Notice) *noticeDoc {
	return &noticeDoc{ID: n.ID, MessID: n.MessID, Message: n.Message, Author: n.Author, AuthorEmail: n.AuthorEmail, CreatedAt: n.CreatedAt}
}

func (d *noticeDoc) domain() models.Notice {
	return models.Notice{ID: d.ID, MessID: d.MessID, Message: d.Message, Author: d.Author, AuthorEmail: d.AuthorEmail, CreatedAt: d.CreatedAt}
}

type reviewDoc struct {
	ID          string `bson:"_id"`
	Author      string `bson:"author"`
	AuthorEmail string `bson:"author_email"`
	Rating      int    `bson:"rating"`
	Comment     string `bson:"comment"`
	CreatedAt   int64  `bson:"created_at"`
}

func toReviewDoc(r *models.Review) *reviewDoc {
	return &reviewDoc{ID: r.ID, Author: r.Author, AuthorEmail: r.AuthorEmail, Rating: r.Rating, Comment: r.Comment, CreatedAt: r.CreatedAt}
}

func (d *reviewDoc) domain() models.Review {
	return models.Review{ID: d.ID, Author: d.Author, AuthorEmail: d.AuthorEmail, Rating: d.Rating, Comment: d.Comment, CreatedAt: d.CreatedAt}
}
