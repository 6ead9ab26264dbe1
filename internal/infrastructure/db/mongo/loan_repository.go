package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pmbajaj/Lib-Management-System/internal/core/domain"
	"github.com/pmbajaj/Lib-Management-System/internal/core/ports"
)

const collectionLoans = "loans"

var activeLoanStatuses = []domain.LoanStatus{domain.LoanBorrowed, domain.LoanOverdue}

// LoanRepository is the mongo-backed loan ledger.
type LoanRepository struct {
	col *mongo.Collection
}

func NewLoanRepository(db *mongo.Database) *LoanRepository {
	return &LoanRepository{col: db.Collection(collectionLoans)}
}

func (r *LoanRepository) Create(ctx context.Context, loan *domain.Loan) (*domain.Loan, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	clone := *loan
	clone.ID = primitive.NewObjectID().Hex()

	if _, err := r.col.InsertOne(ctx, &clone); err != nil {
		return nil, err
	}
	return &clone, nil
}

func (r *LoanRepository) FindByID(ctx context.Context, id string) (*domain.Loan, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var loan domain.Loan
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&loan); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrLoanNotFound
		}
		return nil, err
	}
	return &loan, nil
}

func (r *LoanRepository) Update(ctx context.Context, loan *domain.Loan) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": loan.ID}, loan)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrLoanNotFound
	}
	return nil
}

func (r *LoanRepository) List(ctx context.Context, filter ports.ListLoansFilter) ([]*domain.Loan, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.UserID != "" {
		query["user_id"] = filter.UserID
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "borrow_date", Value: -1}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	loans, err := decodeLoans(ctx, cur)
	if err != nil {
		return nil, 0, err
	}
	return loans, total, nil
}

func (r *LoanRepository) CountActiveByUser(ctx context.Context, userID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.col.CountDocuments(ctx, bson.M{
		"user_id": userID,
		"status":  bson.M{"$in": activeLoanStatuses},
	})
}

func (r *LoanRepository) FindDueBefore(ctx context.Context, cutoff time.Time) ([]*domain.Loan, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{
		"status":   bson.M{"$in": activeLoanStatuses},
		"due_date": bson.M{"$lt": cutoff},
	}, options.Find().SetSort(bson.D{{Key: "due_date", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	return decodeLoans(ctx, cur)
}

func (r *LoanRepository) CountActive(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.col.CountDocuments(ctx, bson.M{"status": bson.M{"$in": activeLoanStatuses}})
}

func (r *LoanRepository) CountOverdue(ctx context.Context, now time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.col.CountDocuments(ctx, bson.M{
		"status":   bson.M{"$in": activeLoanStatuses},
		"due_date": bson.M{"$lt": now},
	})
}

// OutstandingFines sums unpaid fines across the whole ledger.
func (r *LoanRepository) OutstandingFines(ctx context.Context) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"fine_paid": false, "fine_amount": bson.M{"$gt": 0}}}},
		{{Key: "$group", Value: bson.M{"_id": nil, "total": bson.M{"$sum": "$fine_amount"}}}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cur.Close(ctx)

	var result struct {
		Total float64 `bson:"total"`
	}
	if cur.Next(ctx) {
		if err := cur.Decode(&result); err != nil {
			return 0, err
		}
	}
	return result.Total, cur.Err()
}

func (r *LoanRepository) MostBorrowed(ctx context.Context, limit int) ([]ports.BorrowCount, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":        "$book_id",
			"book_title": bson.M{"$first": "$book_title"},
			"count":      bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.M{"count": -1}}},
		{{Key: "$limit", Value: limit}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var counts []ports.BorrowCount
	if err := cur.All(ctx, &counts); err != nil {
		return nil, err
	}
	return counts, nil
}

func (r *LoanRepository) LoansPerMonth(ctx context.Context, months int) ([]ports.MonthlyLoanCount, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	since := time.Now().UTC().AddDate(0, -months, 0)
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"borrow_date": bson.M{"$gte": since}}}},
		{{Key: "$group", Value: bson.M{
			"_id": bson.M{
				"year":  bson.M{"$year": "$borrow_date"},
				"month": bson.M{"$month": "$borrow_date"},
			},
			"count": bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.M{"_id.year": 1, "_id.month": 1}}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var raw []struct {
		ID struct {
			Year  int `bson:"year"`
			Month int `bson:"month"`
		} `bson:"_id"`
		Count int64 `bson:"count"`
	}
	if err := cur.All(ctx, &raw); err != nil {
		return nil, err
	}

	counts := make([]ports.MonthlyLoanCount, 0, len(raw))
	for _, row := range raw {
		counts = append(counts, ports.MonthlyLoanCount{Year: row.ID.Year, Month: row.ID.Month, Count: row.Count})
	}
	return counts, nil
}

// EnsureIndexes creates the ledger query indexes.
func (r *LoanRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "due_date", Value: 1}}},
		{Keys: bson.D{{Key: "book_id", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func decodeLoans(ctx context.Context, cur *mongo.Cursor) ([]*domain.Loan, error) {
	var loans []*domain.Loan
	for cur.Next(ctx) {
		var loan domain.Loan
		if err := cur.Decode(&loan); err != nil {
			return nil, err
		}
		loans = append(loans, &loan)
	}
	return loans, cur.Err()
}
