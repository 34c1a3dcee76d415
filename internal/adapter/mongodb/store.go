package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/heartmarshall/icebreaker-backend/internal/domain"
)

const roomsCollection = "rooms"

type questionDoc struct {
	ID   string `bson:"id"`
	Text string `bson:"text"`
}

type questionAnswerDoc struct {
	QuestionID string `bson:"question_id"`
	Answer     string `bson:"answer"`
}

type answerDoc struct {
	Name        string              `bson:"name"`
	Birthdate   string              `bson:"birthdate"`
	Age         int                 `bson:"age"`
	Hometown    string              `bson:"hometown"`
	Affiliation string              `bson:"affiliation"`
	Aspiration  string              `bson:"aspiration"`
	Answers     []questionAnswerDoc `bson:"answers"`
	SubmittedAt time.Time           `bson:"submitted_at"`
}

type assignmentDoc struct {
	Name             string `bson:"name"`
	Birthdate        string `bson:"birthdate"`
	Age              int    `bson:"age"`
	Hometown         string `bson:"hometown"`
	Affiliation      string `bson:"affiliation"`
	Aspiration       string `bson:"aspiration"`
	RoleID           string `bson:"role_id"`
	RoleTitle        string `bson:"role_title"`
	RoleTitleEnglish string `bson:"role_title_english"`
	Reason           string `bson:"reason"`
	Tips             string `bson:"tips"`
}

type resultDoc struct {
	Source       string          `bson:"source,omitempty"`
	ErrorCode    string          `bson:"error_code,omitempty"`
	ErrorMessage string          `bson:"error_message,omitempty"`
	Assignments  []assignmentDoc `bson:"assignments"`
	GeneratedAt  time.Time       `bson:"generated_at"`
}

// roomDoc is the stored shape. answer_count mirrors len(answers) so the
// capacity guard can compare two scalar fields.
type roomDoc struct {
	ID          string        `bson:"_id"`
	Capacity    int           `bson:"capacity"`
	Questions   []questionDoc `bson:"questions"`
	Status      string        `bson:"status"`
	CreatedAt   time.Time     `bson:"created_at"`
	Answers     []answerDoc   `bson:"answers"`
	AnswerCount int           `bson:"answer_count"`
	Result      *resultDoc    `bson:"result,omitempty"`
}

// Store manages rooms in a single collection.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(roomsCollection)}
}

// EnsureIndexes creates the indexes the store relies on.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.c.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "created_at", Value: -1}},
		Options: options.Index().SetName("idx_rooms_created"),
	})
	if err != nil {
		return fmt.Errorf("ensure rooms indexes: %w", err)
	}
	return nil
}

func (s *Store) CreateRoom(ctx context.Context, room domain.Room) error {
	doc := roomDoc{
		ID:        room.ID,
		Capacity:  room.Capacity,
		Questions: make([]questionDoc, len(room.Questions)),
		Status:    string(room.Status),
		CreatedAt: room.CreatedAt,
		Answers:   []answerDoc{},
	}
	for i, q := range room.Questions {
		doc.Questions[i] = questionDoc{ID: q.ID, Text: q.Text}
	}

	if _, err := s.c.InsertOne(ctx, doc); err != nil {
		return mapError(err, "room", room.ID)
	}
	return nil
}

func (s *Store) GetRoom(ctx context.Context, id string) (*domain.Room, error) {
	var doc roomDoc
	err := s.c.FindOne(ctx, bson.M{"_id": id},
		options.FindOne().SetProjection(bson.M{"answers": 0, "result": 0}),
	).Decode(&doc)
	if err != nil {
		return nil, mapError(err, "room", id)
	}

	room := &domain.Room{
		ID:        doc.ID,
		Capacity:  doc.Capacity,
		Questions: make([]domain.Question, len(doc.Questions)),
		Status:    domain.RoomStatus(doc.Status),
		CreatedAt: doc.CreatedAt.UTC(),
	}
	for i, q := range doc.Questions {
		room.Questions[i] = domain.Question{ID: q.ID, Text: q.Text}
	}
	return room, nil
}

// AppendAnswer pushes the answer only while answer_count < capacity. The
// single-document update is atomic, so concurrent appends cannot overfill.
func (s *Store) AppendAnswer(ctx context.Context, roomID string, answer domain.Answer) (int, error) {
	doc := answerDoc{
		Name:        answer.Name,
		Birthdate:   answer.Birthdate,
		Age:         answer.Age,
		Hometown:    answer.Hometown,
		Affiliation: answer.Affiliation,
		Aspiration:  answer.Aspiration,
		Answers:     make([]questionAnswerDoc, len(answer.Answers)),
		SubmittedAt: answer.SubmittedAt,
	}
	for i, qa := range answer.Answers {
		doc.Answers[i] = questionAnswerDoc{QuestionID: qa.QuestionID, Answer: qa.Answer}
	}

	filter := bson.M{
		"_id":   roomID,
		"$expr": bson.M{"$lt": bson.A{"$answer_count", "$capacity"}},
	}
	update := bson.M{
		"$push": bson.M{"answers": doc},
		"$inc":  bson.M{"answer_count": 1},
	}
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(bson.M{"answer_count": 1})

	var out struct {
		AnswerCount int `bson:"answer_count"`
	}
	err := s.c.FindOneAndUpdate(ctx, filter, update, opts).Decode(&out)
	if err == nil {
		return out.AnswerCount, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return 0, mapError(err, "answer for room", roomID)
	}

	// No match: either the room is missing or it is full.
	count, cerr := s.CountAnswers(ctx, roomID)
	if cerr != nil {
		return 0, cerr
	}
	return count, domain.ErrRoomFull
}

func (s *Store) ListAnswers(ctx context.Context, roomID string) ([]domain.Answer, error) {
	var doc struct {
		Answers []answerDoc `bson:"answers"`
	}
	err := s.c.FindOne(ctx, bson.M{"_id": roomID},
		options.FindOne().SetProjection(bson.M{"answers": 1}),
	).Decode(&doc)
	if err != nil {
		return nil, mapError(err, "room", roomID)
	}

	out := make([]domain.Answer, len(doc.Answers))
	for i, a := range doc.Answers {
		out[i] = domain.Answer{
			Name:        a.Name,
			Birthdate:   a.Birthdate,
			Age:         a.Age,
			Hometown:    a.Hometown,
			Affiliation: a.Affiliation,
			Aspiration:  a.Aspiration,
			Answers:     make([]domain.QuestionAnswer, len(a.Answers)),
			SubmittedAt: a.SubmittedAt.UTC(),
		}
		for j, qa := range a.Answers {
			out[i].Answers[j] = domain.QuestionAnswer{QuestionID: qa.QuestionID, Answer: qa.Answer}
		}
	}
	return out, nil
}

func (s *Store) CountAnswers(ctx context.Context, roomID string) (int, error) {
	var doc struct {
		AnswerCount int `bson:"answer_count"`
	}
	err := s.c.FindOne(ctx, bson.M{"_id": roomID},
		options.FindOne().SetProjection(bson.M{"answer_count": 1}),
	).Decode(&doc)
	if err != nil {
		return 0, mapError(err, "room", roomID)
	}
	return doc.AnswerCount, nil
}

// SaveResult sets the embedded result only if none is present yet.
func (s *Store) SaveResult(ctx context.Context, roomID string, result domain.Result) error {
	doc := resultDoc{
		Source:       string(result.Source),
		ErrorCode:    result.ErrorCode,
		ErrorMessage: result.ErrorMessage,
		Assignments:  make([]assignmentDoc, len(result.Assignments)),
		GeneratedAt:  result.GeneratedAt,
	}
	for i, a := range result.Assignments {
		doc.Assignments[i] = assignmentDoc(a)
	}

	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": roomID, "result": bson.M{"$exists": false}},
		bson.M{"$set": bson.M{"result": doc}},
	)
	if err != nil {
		return mapError(err, "result for room", roomID)
	}
	if res.MatchedCount == 1 {
		return nil
	}

	n, err := s.c.CountDocuments(ctx, bson.M{"_id": roomID})
	if err != nil {
		return mapError(err, "room", roomID)
	}
	if n == 0 {
		return fmt.Errorf("room %s: %w", roomID, domain.ErrNotFound)
	}
	return fmt.Errorf("result for room %s: %w", roomID, domain.ErrAlreadyExists)
}

func (s *Store) GetResult(ctx context.Context, roomID string) (*domain.Result, error) {
	var doc struct {
		Result *resultDoc `bson:"result"`
	}
	err := s.c.FindOne(ctx, bson.M{"_id": roomID},
		options.FindOne().SetProjection(bson.M{"result": 1}),
	).Decode(&doc)
	if err != nil {
		return nil, mapError(err, "result for room", roomID)
	}
	if doc.Result == nil {
		return nil, fmt.Errorf("result for room %s: %w", roomID, domain.ErrNotFound)
	}

	res := &domain.Result{
		Source:       domain.AssignmentSource(doc.Result.Source),
		ErrorCode:    doc.Result.ErrorCode,
		ErrorMessage: doc.Result.ErrorMessage,
		GeneratedAt:  doc.Result.GeneratedAt.UTC(),
	}
	if len(doc.Result.Assignments) > 0 {
		res.Assignments = make([]domain.RoleAssignment, len(doc.Result.Assignments))
		for i, a := range doc.Result.Assignments {
			res.Assignments[i] = domain.RoleAssignment(a)
		}
	}
	return res, nil
}

func (s *Store) Ping(ctx context.Context) error {
	if err := s.c.Database().Client().Ping(ctx, nil); err != nil {
		return fmt.Errorf("ping mongo: %w", err)
	}
	return nil
}

// Close disconnects the underlying client.
func (s *Store) Close(ctx context.Context) error {
	return s.c.Database().Client().Disconnect(ctx)
}

// mapError converts driver errors to domain errors.
func mapError(err error, entity, id string) error {
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%s %s: %w", entity, id, domain.ErrAlreadyExists)
	default:
		return fmt.Errorf("%s %s: %w", entity, id, err)
	}
}
