package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/baechuer/inventory-service/internal/domain"
)

// UserRepo implements auth.UserRepo on MongoDB.
type UserRepo struct {
	col *mongo.Collection
}

func NewUserRepo(c *Client) *UserRepo {
	return &UserRepo{col: c.db.Collection(usersCollection)}
}

// userDoc is the persisted shape of a user. IDs are uuid strings, not
// ObjectIDs, so tokens and logs carry the same identifier everywhere.
type userDoc struct {
	ID           string     `bson:"_id"`
	Email        string     `bson:"email"`
	PasswordHash string     `bson:"password_hash,omitempty"`
	Name         string     `bson:"name,omitempty"`
	Phone        string     `bson:"phone,omitempty"`
	Address      addressDoc `bson:"address,omitempty"`
	Company      companyDoc `bson:"company,omitempty"`
	AvatarURL    string     `bson:"avatar_url,omitempty"`
	GoogleSub    string     `bson:"google_sub,omitempty"`
	CreatedAt    time.Time  `bson:"created_at"`
	UpdatedAt    time.Time  `bson:"updated_at"`
}

type addressDoc struct {
	Street  string `bson:"street,omitempty"`
	City    string `bson:"city,omitempty"`
	State   string `bson:"state,omitempty"`
	Country string `bson:"country,omitempty"`
	ZipCode string `bson:"zip_code,omitempty"`
}

type companyDoc struct {
	Name     string `bson:"name,omitempty"`
	Position string `bson:"position,omitempty"`
}

func toUserDoc(u domain.User) userDoc {
	return userDoc{
		ID:           u.ID,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Name:         u.Name,
		Phone:        u.Phone,
		Address: addressDoc{
			Street:  u.Address.Street,
			City:    u.Address.City,
			State:   u.Address.State,
			Country: u.Address.Country,
			ZipCode: u.Address.ZipCode,
		},
		Company: companyDoc{
			Name:     u.Company.Name,
			Position: u.Company.Position,
		},
		AvatarURL: u.AvatarURL,
		GoogleSub: u.GoogleSub,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func (d userDoc) toDomain() domain.User {
	return domain.User{
		ID:           d.ID,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		Name:         d.Name,
		Phone:        d.Phone,
		Address: domain.Address{
			Street:  d.Address.Street,
			City:    d.Address.City,
			State:   d.Address.State,
			Country: d.Address.Country,
			ZipCode: d.Address.ZipCode,
		},
		Company: domain.Company{
			Name:     d.Company.Name,
			Position: d.Company.Position,
		},
		AvatarURL: d.AvatarURL,
		GoogleSub: d.GoogleSub,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	var doc userDoc
	err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.User{}, domain.ErrUserNotFound()
		}
		return domain.User{}, domain.ErrDBUnavailable(err)
	}
	return doc.toDomain(), nil
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (domain.User, error) {
	var doc userDoc
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.User{}, domain.ErrUserNotFound()
		}
		return domain.User{}, domain.ErrDBUnavailable(err)
	}
	return doc.toDomain(), nil
}

func (r *UserRepo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	_, err := r.col.InsertOne(ctx, toUserDoc(u))
	if err != nil {
		// The unique index decides duplicate races; two concurrent inserts
		// for one email cannot both land.
		if mongo.IsDuplicateKeyError(err) {
			return domain.User{}, domain.ErrEmailAlreadyExists()
		}
		return domain.User{}, domain.ErrDBUnavailable(err)
	}
	return u, nil
}

// Update applies only the provided fields with dotted $set paths, so the
// address/company sub-documents merge instead of being replaced.
func (r *UserRepo) Update(ctx context.Context, userID string, upd domain.UserUpdate) (domain.User, error) {
	set := bson.M{"updated_at": time.Now()}
	setStr := func(path string, v *string) {
		if v != nil {
			set[path] = *v
		}
	}
	setStr("name", upd.Name)
	setStr("email", upd.Email)
	setStr("phone", upd.Phone)
	setStr("avatar_url", upd.AvatarURL)
	setStr("address.street", upd.Address.Street)
	setStr("address.city", upd.Address.City)
	setStr("address.state", upd.Address.State)
	setStr("address.country", upd.Address.Country)
	setStr("address.zip_code", upd.Address.ZipCode)
	setStr("company.name", upd.Company.Name)
	setStr("company.position", upd.Company.Position)

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc userDoc
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": userID}, bson.M{"$set": set}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.User{}, domain.ErrUserNotFound()
		}
		if mongo.IsDuplicateKeyError(err) {
			return domain.User{}, domain.ErrEmailAlreadyExists()
		}
		return domain.User{}, domain.ErrDBUnavailable(err)
	}
	return doc.toDomain(), nil
}

func (r *UserRepo) LinkGoogleSub(ctx context.Context, userID string, sub string) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$set": bson.M{"google_sub": sub, "updated_at": time.Now()}},
	)
	if err != nil {
		return domain.ErrDBUnavailable(err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound()
	}
	return nil
}
