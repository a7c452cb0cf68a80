// Package mongo provides a MongoDB-backed implementation of the
// storage.Store interface. The collection layout mirrors the per-mess
// document model: every mess-scoped record carries a mess_id field and all
// queries filter on it.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/arefin/messmate/internal/models"
	"github.com/arefin/messmate/internal/storage"
)

// Collection name constants.
const (
	colUsers          = "users"
	colMesses         = "messes"
	colMembers        = "members"
	colDeposits       = "deposits"
	colExpenses       = "expenses"
	colSharedExpenses = "shared_expenses"
	colMealCounts     = "meal_counts"
	colDebtRequests   = "debt_requests"
	colDebts          = "debts"
	colTasks          = "tasks"
	colNotices        = "notices"
	colReviews        = "reviews"
)

// Ensure Store implements storage.Store
var _ storage.Store = (*Store)(nil)

// Store implements storage.Store using MongoDB.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// New connects to MongoDB and ensures indexes. Settlement runs in a session
// transaction, so the deployment must support transactions (replica set).
func New(ctx context.Context, uri, database string) (*Store, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	s := &Store{client: client, db: client.Database(database)}
	if err := s.migrate(ctx); err != nil {
		client.Disconnect(ctx)
		return nil, err
	}
	return s, nil
}

// migrate creates the indexes every mess-scoped query depends on.
func (s *Store) migrate(ctx context.Context) error {
	messScoped := []string{
		colMembers, colDeposits, colExpenses, colSharedExpenses,
		colMealCounts, colDebtRequests, colDebts, colTasks, colNotices,
	}
	for _, col := range messScoped {
		_, err := s.db.Collection(col).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys: bson.D{{Key: "mess_id", Value: 1}},
		})
		if err != nil {
			return fmt.Errorf("failed to index %s: %w", col, err)
		}
	}

	uniques := []struct {
		col  string
		keys bson.D
	}{
		{colUsers, bson.D{{Key: "email", Value: 1}}},
		{colMembers, bson.D{{Key: "mess_id", Value: 1}, {Key: "email", Value: 1}}},
	}
	for _, u := range uniques {
		_, err := s.db.Collection(u.col).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    u.keys,
			Options: options.Index().SetUnique(true),
		})
		if err != nil {
			return fmt.Errorf("failed to create unique index on %s: %w", u.col, err)
		}
	}
	return nil
}

// Close disconnects from the database.
func (s *Store) Close() error {
	return s.client.Disconnect(context.Background())
}

// findAll decodes every document matching the filter, newest first by the
// given sort key.
func findAll[D any](ctx context.Context, col *mongo.Collection, filter bson.M, sortKey string) ([]D, error) {
	cur, err := col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: sortKey, Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", col.Name(), err)
	}
	var docs []D
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", col.Name(), err)
	}
	return docs, nil
}

func (s *Store) deleteOne(ctx context.Context, col string, filter bson.M, id string) error {
	res, err := s.db.Collection(col).DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to delete from %s: %w", col, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("%s: %w", id, storage.ErrNotFound)
	}
	return nil
}

// ==================== Users ====================

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	now := time.Now().Unix()
	if user.CreatedAt == 0 {
		user.CreatedAt = now
	}
	if user.UpdatedAt == 0 {
		user.UpdatedAt = now
	}
	if _, err := s.db.Collection(colUsers).InsertOne(ctx, toUserDoc(user)); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getUser(ctx, bson.M{"email": email})
}

func (s *Store) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return s.getUser(ctx, bson.M{"_id": id})
}

func (s *Store) getUser(ctx context.Context, filter bson.M) (*models.User, error) {
	var d userDoc
	err := s.db.Collection(colUsers).FindOne(ctx, filter).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return d.domain(), nil
}

// ==================== Messes ====================

func (s *Store) CreateMess(ctx context.Context, mess *models.Mess) error {
	if mess.ID == "" {
		mess.ID = uuid.New().String()
	}
	if mess.CreatedAt == 0 {
		mess.CreatedAt = time.Now().Unix()
	}
	doc := &messDoc{ID: mess.ID, Name: mess.Name, CreatedAt: mess.CreatedAt}
	if _, err := s.db.Collection(colMesses).InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to create mess: %w", err)
	}
	return nil
}

func (s *Store) GetMess(ctx context.Context, messID string) (*models.Mess, error) {
	var d messDoc
	err := s.db.Collection(colMesses).FindOne(ctx, bson.M{"_id": messID}).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("mess %s: %w", messID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get mess: %w", err)
	}
	return d.domain(), nil
}

// ==================== Members ====================

func (s *Store) ListMembers(ctx context.Context, messID string) ([]models.Member, error) {
	cur, err := s.db.Collection(colMembers).Find(ctx, bson.M{"mess_id": messID},
		options.Find().SetSort(bson.D{{Key: "join_date", Value: 1}, {Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	var docs []memberDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode members: %w", err)
	}
	members := make([]models.Member, len(docs))
	for i := range docs {
		members[i] = docs[i].domain()
	}
	return members, nil
}

func (s *Store) AddMember(ctx context.Context, member *models.Member) error {
	if member.ID == "" {
		member.ID = uuid.New().String()
	}
	if member.JoinDate == "" {
		member.JoinDate = models.Today()
	}
	if _, err := s.db.Collection(colMembers).InsertOne(ctx, toMemberDoc(member)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return storage.ErrDuplicateEmail
		}
		return fmt.Errorf("failed to add member: %w", err)
	}
	return nil
}

func (s *Store) GetMember(ctx context.Context, messID, memberID string) (*models.Member, error) {
	var d memberDoc
	err := s.db.Collection(colMembers).FindOne(ctx, bson.M{"_id": memberID, "mess_id": messID}).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("member %s: %w", memberID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	m := d.domain()
	return &m, nil
}

func (s *Store) GetMemberByEmail(ctx context.Context, messID, email string) (*models.Member, error) {
	var d memberDoc
	err := s.db.Collection(colMembers).FindOne(ctx, bson.M{"mess_id": messID, "email": email}).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get member by email: %w", err)
	}
	m := d.domain()
	return &m, nil
}

func (s *Store) DeleteMember(ctx context.Context, messID, memberID string) error {
	return s.deleteOne(ctx, colMembers, bson.M{"_id": memberID, "mess_id": messID}, memberID)
}

// ==================== Deposits ====================

func (s *Store) ListDeposits(ctx context.Context, messID string) ([]models.Deposit, error) {
	docs, err := findAll[depositDoc](ctx, s.db.Collection(colDeposits), bson.M{"mess_id": messID}, "date")
	if err != nil {
		return nil, err
	}
	deposits := make([]models.Deposit, len(docs))
	for i := range docs {
		deposits[i] = docs[i].domain()
	}
	return deposits, nil
}

func (s *Store) AddDeposit(ctx context.Context, deposit *models.Deposit) error {
	if deposit.ID == "" {
		deposit.ID = uuid.New().String()
	}
	if _, err := s.db.Collection(colDeposits).InsertOne(ctx, toDepositDoc(deposit)); err != nil {
		return fmt.Errorf("failed to add deposit: %w", err)
	}
	return nil
}

func (s *Store) UpdateDeposit(ctx context.Context, deposit *models.Deposit) error {
	res, err := s.db.Collection(colDeposits).UpdateOne(ctx,
		bson.M{"_id": deposit.ID, "mess_id": deposit.MessID},
		bson.M{"$set": bson.M{"amount": deposit.Amount, "date": deposit.Date}},
	)
	if err != nil {
		return fmt.Errorf("failed to update deposit: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("deposit %s: %w", deposit.ID, storage.ErrNotFound)
	}
	return nil
}

func (s *Store) DeleteDeposit(ctx context.Context, messID, depositID string) error {
	return s.deleteOne(ctx, colDeposits, bson.M{"_id": depositID, "mess_id": messID}, depositID)
}

// ==================== Expenses ====================

func (s *Store) ListExpenses(ctx context.Context, messID string) ([]models.Expense, error) {
	docs, err := findAll[expenseDoc](ctx, s.db.Collection(colExpenses), bson.M{"mess_id": messID}, "date")
	if err != nil {
		return nil, err
	}
	expenses := make([]models.Expense, len(docs))
	for i := range docs {
		expenses[i] = docs[i].expense()
	}
	return expenses, nil
}

func (s *Store) AddExpense(ctx context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if _, err := s.db.Collection(colExpenses).InsertOne(ctx, toExpenseDoc(expense)); err != nil {
		return fmt.Errorf("failed to add expense: %w", err)
	}
	return nil
}

func (s *Store) UpdateExpense(ctx context.Context, expense *models.Expense) error {
	return s.updateExpenseDoc(ctx, colExpenses, expense.MessID, expense.ID, bson.M{
		"date": expense.Date, "amount": expense.Amount,
		"description": expense.Description, "category": expense.Category,
	})
}

func (s *Store) DeleteExpense(ctx context.Context, messID, expenseID string) error {
	return s.deleteOne(ctx, colExpenses, bson.M{"_id": expenseID, "mess_id": messID}, expenseID)
}

func (s *Store) ListSharedExpenses(ctx context.Context, messID string) ([]models.SharedExpense, error) {
	docs, err := findAll[expenseDoc](ctx, s.db.Collection(colSharedExpenses), bson.M{"mess_id": messID}, "date")
	if err != nil {
		return nil, err
	}
	expenses := make([]models.SharedExpense, len(docs))
	for i := range docs {
		expenses[i] = docs[i].sharedExpense()
	}
	return expenses, nil
}

func (s *Store) AddSharedExpense(ctx context.Context, expense *models.SharedExpense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if _, err := s.db.Collection(colSharedExpenses).InsertOne(ctx, toSharedExpenseDoc(expense)); err != nil {
		return fmt.Errorf("failed to add shared expense: %w", err)
	}
	return nil
}

func (s *Store) UpdateSharedExpense(ctx context.Context, expense *models.SharedExpense) error {
	return s.updateExpenseDoc(ctx, colSharedExpenses, expense.MessID, expense.ID, bson.M{
		"date": expense.Date, "amount": expense.Amount,
		"description": expense.Description, "category": expense.Category,
	})
}

func (s *Store) DeleteSharedExpense(ctx context.Context, messID, expenseID string) error {
	return s.deleteOne(ctx, colSharedExpenses, bson.M{"_id": expenseID, "mess_id": messID}, expenseID)
}

func (s *Store) updateExpenseDoc(ctx context.Context, col, messID, id string, set bson.M) error {
	res, err := s.db.Collection(col).UpdateOne(ctx,
		bson.M{"_id": id, "mess_id": messID}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update %s: %w", col, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%s: %w", id, storage.ErrNotFound)
	}
	return nil
}

// ==================== Meal counts ====================

func (s *Store) ListMealCounts(ctx context.Context, messID string) ([]models.MealCount, error) {
	docs, err := findAll[mealCountDoc](ctx, s.db.Collection(colMealCounts), bson.M{"mess_id": messID}, "date")
	if err != nil {
		return nil, err
	}
	counts := make([]models.MealCount, len(docs))
	for i := range docs {
		counts[i] = docs[i].domain()
	}
	return counts, nil
}

func (s *Store) AddMealCount(ctx context.Context, mealCount *models.MealCount) error {
	if mealCount.ID == "" {
		mealCount.ID = uuid.New().String()
	}
	if _, err := s.db.Collection(colMealCounts).InsertOne(ctx, toMealCountDoc(mealCount)); err != nil {
		return fmt.Errorf("failed to add meal count: %w", err)
	}
	return nil
}

func (s *Store) DeleteMealCount(ctx context.Context, messID, mealCountID string) error {
	return s.deleteOne(ctx, colMealCounts, bson.M{"_id": mealCountID, "mess_id": messID}, mealCountID)
}

// ==================== Debt requests and debts ====================

func (s *Store) ListDebtRequests(ctx context.Context, messID string) ([]models.DebtRequest, error) {
	docs, err := findAll[debtRequestDoc](ctx, s.db.Collection(colDebtRequests), bson.M{"mess_id": messID}, "date")
	if err != nil {
		return nil, err
	}
	requests := make([]models.DebtRequest, len(docs))
	for i := range docs {
		requests[i] = docs[i].domain()
	}
	return requests, nil
}

func (s *Store) GetDebtRequest(ctx context.Context, messID, requestID string) (*models.DebtRequest, error) {
	var d debtRequestDoc
	err := s.db.Collection(colDebtRequests).FindOne(ctx, bson.M{"_id": requestID, "mess_id": messID}).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("debt request %s: %w", requestID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get debt request: %w", err)
	}
	r := d.domain()
	return &r, nil
}

func (s *Store) AddDebtRequest(ctx context.Context, request *models.DebtRequest) error {
	if request.ID == "" {
		request.ID = uuid.New().String()
	}
	if _, err := s.db.Collection(colDebtRequests).InsertOne(ctx, toDebtRequestDoc(request)); err != nil {
		return fmt.Errorf("failed to add debt request: %w", err)
	}
	return nil
}

// SettleDebtRequest runs the full settlement in one session transaction.
// The pending-only guard lives in the status update's filter: when a
// concurrent accept already moved the request, MatchedCount is zero, the
// transaction aborts, and nothing is written.
func (s *Store) SettleDebtRequest(ctx context.Context, messID, requestID string, deposits [2]models.Deposit, debt models.Debt) error {
	session, err := s.client.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(ctx context.Context) (any, error) {
		if err := s.transitionDebtRequest(ctx, messID, requestID, models.DebtAccepted); err != nil {
			return nil, err
		}

		for i := range deposits {
			d := deposits[i]
			if d.ID == "" {
				d.ID = uuid.New().String()
			}
			if _, err := s.db.Collection(colDeposits).InsertOne(ctx, toDepositDoc(&d)); err != nil {
				return nil, fmt.Errorf("failed to insert settlement deposit: %w", err)
			}
		}

		if debt.ID == "" {
			debt.ID = uuid.New().String()
		}
		if _, err := s.db.Collection(colDebts).InsertOne(ctx, toDebtDoc(&debt)); err != nil {
			return nil, fmt.Errorf("failed to insert debt record: %w", err)
		}
		return nil, nil
	})
	return err
}

func (s *Store) DenyDebtRequest(ctx context.Context, messID, requestID string) error {
	return s.transitionDebtRequest(ctx, messID, requestID, models.DebtDenied)
}

func (s *Store) transitionDebtRequest(ctx context.Context, messID, requestID string, status models.DebtRequestStatus) error {
	res, err := s.db.Collection(colDebtRequests).UpdateOne(ctx,
		bson.M{"_id": requestID, "mess_id": messID, "status": string(models.DebtPending)},
		bson.M{"$set": bson.M{"status": string(status)}},
	)
	if err != nil {
		return fmt.Errorf("failed to update debt request status: %w", err)
	}
	if res.MatchedCount == 0 {
		if _, err := s.GetDebtRequest(ctx, messID, requestID); err != nil {
			return err
		}
		return storage.ErrNotPending
	}
	return nil
}

func (s *Store) ListDebts(ctx context.Context, messID string) ([]models.Debt, error) {
	docs, err := findAll[debtDoc](ctx, s.db.Collection(colDebts), bson.M{"mess_id": messID}, "date")
	if err != nil {
		return nil, err
	}
	debts := make([]models.Debt, len(docs))
	for i := range docs {
		debts[i] = docs[i].domain()
	}
	return debts, nil
}

// ==================== Tasks ====================

func (s *Store) ListTasks(ctx context.Context, messID string) ([]models.Task, error) {
	docs, err := findAll[taskDoc](ctx, s.db.Collection(colTasks), bson.M{"mess_id": messID}, "due_date")
	if err != nil {
		return nil, err
	}
	tasks := make([]models.Task, len(docs))
	for i := range docs {
		tasks[i] = docs[i].domain()
	}
	return tasks, nil
}

func (s *Store) AddTask(ctx context.Context, task *models.Task) error {
	if task.ID == "" {
		task.ID = uuid.New().String()
	}
	if task.Status == "" {
		task.Status = models.TaskPending
	}
	if _, err := s.db.Collection(colTasks).InsertOne(ctx, toTaskDoc(task)); err != nil {
		return fmt.Errorf("failed to add task: %w", err)
	}
	return nil
}

func (s *Store) UpdateTaskStatus(ctx context.Context, messID, taskID string, status models.TaskStatus) error {
	res, err := s.db.Collection(colTasks).UpdateOne(ctx,
		bson.M{"_id": taskID, "mess_id": messID},
		bson.M{"$set": bson.M{"status": string(status)}},
	)
	if err != nil {
		return fmt.Errorf("failed to update task status: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("task %s: %w", taskID, storage.ErrNotFound)
	}
	return nil
}

func (s *Store) DeleteTask(ctx context.Context, messID, taskID string) error {
	return s.deleteOne(ctx, colTasks, bson.M{"_id": taskID, "mess_id": messID}, taskID)
}

// ==================== Notices ====================

func (s *Store) ListNotices(ctx context.Context, messID string) ([]models.Notice, error) {
	docs, err := findAll[noticeDoc](ctx, s.db.Collection(colNotices), bson.M{"mess_id": messID}, "created_at")
	if err != nil {
		return nil, err
	}
	notices := make([]models.Notice, len(docs))
	for i := range docs {
		notices[i] = docs[i].domain()
	}
	return notices, nil
}

func (s *Store) AddNotice(ctx context.Context, notice *models.Notice) error {
	if notice.ID == "" {
		notice.ID = uuid.New().String()
	}
	if notice.CreatedAt == 0 {
		notice.CreatedAt = time.Now().Unix()
	}
	if _, err := s.db.Collection(colNotices).InsertOne(ctx, toNoticeDoc(notice)); err != nil {
		return fmt.Errorf("failed to add notice: %w", err)
	}
	return nil
}

func (s *Store) GetNotice(ctx context.Context, messID, noticeID string) (*models.Notice, error) {
	var d noticeDoc
	err := s.db.Collection(colNotices).FindOne(ctx, bson.M{"_id": noticeID, "mess_id": messID}).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("notice %s: %w", noticeID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get notice: %w", err)
	}
	n := d.domain()
	return &n, nil
}

func (s *Store) DeleteNotice(ctx context.Context, messID, noticeID string) error {
	return s.deleteOne(ctx, colNotices, bson.M{"_id": noticeID, "mess_id": messID}, noticeID)
}

// ==================== Reviews ====================

func (s *Store) ListReviews(ctx context.Context) ([]models.Review, error) {
	docs, err := findAll[reviewDoc](ctx, s.db.Collection(colReviews), bson.M{}, "created_at")
	if err != nil {
		return nil, err
	}
	reviews := make([]models.Review, len(docs))
	for i := range docs {
		reviews[i] = docs[i].domain()
	}
	return reviews, nil
}

func (s *Store) GetReview(ctx context.Context, reviewID string) (*models.Review, error) {
	var d reviewDoc
	err := s.db.Collection(colReviews).FindOne(ctx, bson.M{"_id": reviewID}).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("review %s: %w", reviewID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get review: %w", err)
	}
	r := d.domain()
	return &r, nil
}

func (s *Store) AddReview(ctx context.Context, review *models.Review) error {
	if review.ID == "" {
		review.ID = uuid.New().String()
	}
	if review.CreatedAt == 0 {
		review.CreatedAt = time.Now().Unix()
	}
	if _, err := s.db.Collection(colReviews).InsertOne(ctx, toReviewDoc(review)); err != nil {
		return fmt.Errorf("failed to add review: %w", err)
	}
	return nil
}

func (s *Store) UpdateReview(ctx context.Context, review *models.Review) error {
	res, err := s.db.Collection(colReviews).UpdateOne(ctx,
		bson.M{"_id": review.ID},
		bson.M{"$set": bson.M{"rating": review.Rating, "comment": review.Comment}},
	)
	if err != nil {
		return fmt.Errorf("failed to update review: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("review %s: %w", review.ID, storage.ErrNotFound)
	}
	return nil
}

func (s *Store) DeleteReview(ctx context.Context, reviewID string) error {
	return s.deleteOne(ctx, colReviews, bson.M{"_id": reviewID}, reviewID)
}
