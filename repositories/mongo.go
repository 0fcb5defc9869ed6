package repositories

import (
	"context"
	"time"

	"communitex-be/apperrors"
	"communitex-be/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoIssueRepository stores issues in the "issues" collection.
type MongoIssueRepository struct {
	collection *mongo.Collection
}

func NewMongoIssueRepository(collection *mongo.Collection) *MongoIssueRepository {
	return &MongoIssueRepository{collection: collection}
}

func (r *MongoIssueRepository) Save(ctx context.Context, issue models.Issue) (models.Issue, error) {
	if issue.ID.IsZero() {
		issue.ID = primitive.NewObjectID()
	}
	if _, err := r.collection.InsertOne(ctx, issue); err != nil {
		return models.Issue{}, err
	}
	return issue, nil
}

func (r *MongoIssueRepository) FindByID(ctx context.Context, id primitive.ObjectID) (models.Issue, error) {
	var issue models.Issue
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&issue)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Issue{}, apperrors.NotFound("issue not found with ID: %s", id.Hex())
		}
		return models.Issue{}, err
	}
	return issue, nil
}

func (r *MongoIssueRepository) FindAll(ctx context.Context) ([]models.Issue, error) {
	return r.findIssues(ctx, bson.M{})
}

func (r *MongoIssueRepository) FindByAuthor(ctx context.Context, authorID primitive.ObjectID) ([]models.Issue, error) {
	return r.findIssues(ctx, bson.M{"createdBy": authorID})
}

func (r *MongoIssueRepository) FindByStatus(ctx context.Context, status models.IssueStatus) ([]models.Issue, error) {
	return r.findIssues(ctx, bson.M{"status": status})
}

func (r *MongoIssueRepository) FindUnresolvedByType(ctx context.Context, issueType models.IssueType, excluded []models.IssueStatus) ([]models.Issue, error) {
	return r.findIssues(ctx, bson.M{
		"type":   issueType,
		"status": bson.M{"$nin": excluded},
	})
}

func (r *MongoIssueRepository) findIssues(ctx context.Context, filter bson.M) ([]models.Issue, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var issues []models.Issue
	if err := cursor.All(ctx, &issues); err != nil {
		return nil, err
	}
	return issues, nil
}

func (r *MongoIssueRepository) Update(ctx context.Context, issue models.Issue) error {
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": issue.ID}, issue)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return apperrors.NotFound("issue not found with ID: %s", issue.ID.Hex())
	}
	return nil
}

func (r *MongoIssueRepository) ExistsByID(ctx context.Context, id primitive.ObjectID) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *MongoIssueRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// MongoInteractionRepository stores interactions in the "interactions"
// collection. A partial unique index on (issue, user, type) backs the
// SUPPORT/LIKE uniqueness rule; see models.EnsureInteractionIndex.
type MongoInteractionRepository struct {
	collection *mongo.Collection
}

func NewMongoInteractionRepository(collection *mongo.Collection) *MongoInteractionRepository {
	return &MongoInteractionRepository{collection: collection}
}

func (r *MongoInteractionRepository) Save(ctx context.Context, interaction models.Interaction) (models.Interaction, error) {
	if interaction.ID.IsZero() {
		interaction.ID = primitive.NewObjectID()
	}
	if _, err := r.collection.InsertOne(ctx, interaction); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.Interaction{}, ErrConflict
		}
		return models.Interaction{}, err
	}
	return interaction, nil
}

func (r *MongoInteractionRepository) FindByID(ctx context.Context, id primitive.ObjectID) (models.Interaction, error) {
	var interaction models.Interaction
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&interaction)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Interaction{}, apperrors.NotFound("interaction not found with ID: %s", id.Hex())
		}
		return models.Interaction{}, err
	}
	return interaction, nil
}

func (r *MongoInteractionRepository) FindByIssue(ctx context.Context, issueID primitive.ObjectID) ([]models.Interaction, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"issue": issueID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var interactions []models.Interaction
	if err := cursor.All(ctx, &interactions); err != nil {
		return nil, err
	}
	return interactions, nil
}

func (r *MongoInteractionRepository) FindByIssueUserType(ctx context.Context, issueID, userID primitive.ObjectID, interactionType models.InteractionType) (*models.Interaction, error) {
	var interaction models.Interaction
	err := r.collection.FindOne(ctx, bson.M{
		"issue": issueID,
		"user":  userID,
		"type":  interactionType,
	}).Decode(&interaction)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &interaction, nil
}

func (r *MongoInteractionRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *MongoInteractionRepository) DeleteByIssue(ctx context.Context, issueID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"issue": issueID})
	return err
}

// MongoAdocaoRepository stores adoption proposals in the "adocoes" collection.
type MongoAdocaoRepository struct {
	collection *mongo.Collection
}

func NewMongoAdocaoRepository(collection *mongo.Collection) *MongoAdocaoRepository {
	return &MongoAdocaoRepository{collection: collection}
}

func (r *MongoAdocaoRepository) Save(ctx context.Context, adocao models.Adocao) (models.Adocao, error) {
	if adocao.ID.IsZero() {
		adocao.ID = primitive.NewObjectID()
	}
	if _, err := r.collection.InsertOne(ctx, adocao); err != nil {
		return models.Adocao{}, err
	}
	return adocao, nil
}

func (r *MongoAdocaoRepository) FindByID(ctx context.Context, id primitive.ObjectID) (models.Adocao, error) {
	var adocao models.Adocao
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&adocao)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Adocao{}, apperrors.NotFound("adoption not found with ID: %s", id.Hex())
		}
		return models.Adocao{}, err
	}
	return adocao, nil
}

func (r *MongoAdocaoRepository) FindAll(ctx context.Context) ([]models.Adocao, error) {
	return r.findAdocoes(ctx, bson.M{})
}

func (r *MongoAdocaoRepository) Update(ctx context.Context, adocao models.Adocao) error {
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": adocao.ID}, adocao)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return apperrors.NotFound("adoption not found with ID: %s", adocao.ID.Hex())
	}
	return nil
}

func (r *MongoAdocaoRepository) FindByStatus(ctx context.Context, status models.AdocaoStatus) ([]models.Adocao, error) {
	return r.findAdocoes(ctx, bson.M{"status": status})
}

func (r *MongoAdocaoRepository) FindByPeriod(ctx context.Context, start, end time.Time) ([]models.Adocao, error) {
	return r.findAdocoes(ctx, bson.M{
		"startDate": bson.M{"$gte": start},
		"endDate":   bson.M{"$lte": end},
	})
}

func (r *MongoAdocaoRepository) FindByEmpresa(ctx context.Context, empresaID primitive.ObjectID) ([]models.Adocao, error) {
	return r.findAdocoes(ctx, bson.M{"empresa": empresaID})
}

func (r *MongoAdocaoRepository) FindByPraca(ctx context.Context, pracaID primitive.ObjectID) ([]models.Adocao, error) {
	return r.findAdocoes(ctx, bson.M{"praca": pracaID})
}

func (r *MongoAdocaoRepository) FindNearingDeadline(ctx context.Context, from, to time.Time, status *models.AdocaoStatus) ([]models.Adocao, error) {
	filter := bson.M{"endDate": bson.M{"$gte": from, "$lte": to}}
	if status != nil {
		filter["status"] = *status
	}
	return r.findAdocoes(ctx, filter)
}

func (r *MongoAdocaoRepository) findAdocoes(ctx context.Context, filter bson.M) ([]models.Adocao, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var adocoes []models.Adocao
	if err := cursor.All(ctx, &adocoes); err != nil {
		return nil, err
	}
	return adocoes, nil
}

func (r *MongoAdocaoRepository) ExistsByID(ctx context.Context, id primitive.ObjectID) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *MongoAdocaoRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// MongoPracaRepository stores squares in the "pracas" collection.
type MongoPracaRepository struct {
	collection *mongo.Collection
}

func NewMongoPracaRepository(collection *mongo.Collection) *MongoPracaRepository {
	return &MongoPracaRepository{collection: collection}
}

func (r *MongoPracaRepository) Save(ctx context.Context, praca models.Praca) (models.Praca, error) {
	if praca.ID.IsZero() {
		praca.ID = primitive.NewObjectID()
	}
	if _, err := r.collection.InsertOne(ctx, praca); err != nil {
		return models.Praca{}, err
	}
	return praca, nil
}

func (r *MongoPracaRepository) FindByID(ctx context.Context, id primitive.ObjectID) (models.Praca, error) {
	var praca models.Praca
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&praca)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Praca{}, apperrors.NotFound("square not found with ID: %s", id.Hex())
		}
		return models.Praca{}, err
	}
	return praca, nil
}

func (r *MongoPracaRepository) FindAll(ctx context.Context, filter PracaFilter) ([]models.Praca, error) {
	query := bson.M{}
	if filter.City != "" {
		query["city"] = filter.City
	}
	if filter.Neighborhood != "" {
		query["neighborhood"] = filter.Neighborhood
	}
	if filter.Status != nil {
		query["status"] = *filter.Status
	}

	cursor, err := r.collection.Find(ctx, query)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var pracas []models.Praca
	if err := cursor.All(ctx, &pracas); err != nil {
		return nil, err
	}
	return pracas, nil
}

func (r *MongoPracaRepository) Update(ctx context.Context, praca models.Praca) error {
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": praca.ID}, praca)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return apperrors.NotFound("square not found with ID: %s", praca.ID.Hex())
	}
	return nil
}

// SetStatusIfNotAdopted is a single conditional write: the filter excludes
// squares already ADOPTED, so concurrent adoption attempts on the same
// square serialize at the storage layer and at most one wins.
func (r *MongoPracaRepository) SetStatusIfNotAdopted(ctx context.Context, id primitive.ObjectID, status models.PracaStatus) (bool, error) {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id, "status": bson.M{"$ne": models.PracaAdopted}},
		bson.M{"$set": bson.M{"status": status}},
	)
	if err != nil {
		return false, err
	}
	return result.MatchedCount > 0, nil
}

func (r *MongoPracaRepository) SetStatus(ctx context.Context, id primitive.ObjectID, status models.PracaStatus) error {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return apperrors.NotFound("square not found with ID: %s", id.Hex())
	}
	return nil
}

func (r *MongoPracaRepository) ExistsByID(ctx context.Context, id primitive.ObjectID) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *MongoPracaRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// MongoEmpresaRepository stores companies in the "empresas" collection.
type MongoEmpresaRepository struct {
	collection *mongo.Collection
}

func NewMongoEmpresaRepository(collection *mongo.Collection) *MongoEmpresaRepository {
	return &MongoEmpresaRepository{collection: collection}
}

func (r *MongoEmpresaRepository) Save(ctx context.Context, empresa models.Empresa) (models.Empresa, error) {
	if empresa.ID.IsZero() {
		empresa.ID = primitive.NewObjectID()
	}
	if _, err := r.collection.InsertOne(ctx, empresa); err != nil {
		return models.Empresa{}, err
	}
	return empresa, nil
}

func (r *MongoEmpresaRepository) FindByID(ctx context.Context, id primitive.ObjectID) (models.Empresa, error) {
	var empresa models.Empresa
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&empresa)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Empresa{}, apperrors.NotFound("company not found with ID: %s", id.Hex())
		}
		return models.Empresa{}, err
	}
	return empresa, nil
}

func (r *MongoEmpresaRepository) FindByRepresentative(ctx context.Context, userID primitive.ObjectID) (models.Empresa, error) {
	var empresa models.Empresa
	err := r.collection.FindOne(ctx, bson.M{"representatives": userID}).Decode(&empresa)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Empresa{}, apperrors.NotFound("no company associated with user: %s", userID.Hex())
		}
		return models.Empresa{}, err
	}
	return empresa, nil
}

// MongoUserRepository reads users from the "users" collection.
type MongoUserRepository struct {
	collection *mongo.Collection
}

func NewMongoUserRepository(collection *mongo.Collection) *MongoUserRepository {
	return &MongoUserRepository{collection: collection}
}

func (r *MongoUserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.User{}, apperrors.NotFound("user not found with ID: %s", id.Hex())
		}
		return models.User{}, err
	}
	return user, nil
}
