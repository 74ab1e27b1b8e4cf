package postgres

import (
	"context"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/agrosense/agrosense/pkg/config"
	"github.com/agrosense/agrosense/pkg/helpers"
	"github.com/agrosense/agrosense/pkg/resources"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func CreatePostgresDBConnection(logger *logrus.Entry, cfg config.PostgresPSEConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable", cfg.Hostname, cfg.Username, cfg.Password, cfg.Database, cfg.Port)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: NewGormLogger(logger),
	})

	return db, err
}

func CreateSQLiteDBConnection(logger *logrus.Entry, cfg config.SQLitePSEConfig) (*gorm.DB, error) {
	path := cfg.DatabasePath
	if cfg.InMemory {
		path = "file::memory:?cache=shared"
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: NewGormLogger(logger),
	})

	return db, err
}

func TableQuery[E any](log *logrus.Entry, db *gorm.DB, tableName string, primaryKeyColumn string, model E) (*gormDBQuerier[E], error) {
	err := db.Table(tableName).AutoMigrate(&model)
	if err != nil {
		return nil, fmt.Errorf("could not migrate table %s: %w", tableName, err)
	}

	querier := newGormDBQuerier[E](db, tableName, primaryKeyColumn)
	return &querier, nil
}

type gormDBQuerier[E any] struct {
	*gorm.DB
	tableName        string
	primaryKeyColumn string
}

func newGormDBQuerier[E any](db *gorm.DB, tableName string, primaryKeyColumn string) gormDBQuerier[E] {
	return gormDBQuerier[E]{
		DB:               db,
		tableName:        tableName,
		primaryKeyColumn: primaryKeyColumn,
	}
}

type gormExtraOps struct {
	query           interface{}
	additionalWhere []interface{}
}

func applyExtraOpts(tx *gorm.DB, extraOpts []gormExtraOps) *gorm.DB {
	for _, whereQuery := range extraOpts {
		tx = tx.Where(whereQuery.query, whereQuery.additionalWhere...)
	}

	return tx
}

func (db *gormDBQuerier[E]) Count(ctx context.Context, extraOpts []gormExtraOps) (int, error) {
	var count int64
	tx := db.Table(db.tableName).WithContext(ctx)

	tx = applyExtraOpts(tx, extraOpts)

	tx.Count(&count)
	if err := tx.Error; err != nil {
		return -1, err
	}

	return int(count), nil
}

func (db *gormDBQuerier[E]) CountFiltered(ctx context.Context, filters []resources.FilterOption, extraOpts []gormExtraOps) (int, error) {
	var count int64
	tx := db.Table(db.tableName).WithContext(ctx)

	for _, filter := range filters {
		tx = FilterOperandToWhereClause(filter, tx)
	}

	tx = applyExtraOpts(tx, extraOpts)

	tx.Count(&count)
	if err := tx.Error; err != nil {
		return -1, err
	}

	return int(count), nil
}

func (db *gormDBQuerier[E]) SelectAll(ctx context.Context, queryParams *resources.QueryParameters, extraOpts []gormExtraOps, exhaustiveRun bool, applyFunc func(elem E)) (string, error) {
	var elems []E
	tx := db.Table(db.tableName)

	offset := 0
	limit := 15

	var sortMode string
	var sortBy string

	nextBookmark := ""

	if queryParams != nil {
		if queryParams.NextBookmark == "" {
			if queryParams.PageSize > 0 {
				limit = queryParams.PageSize
			}

			if queryParams.Sort.SortMode == "" {
				sortMode = string(resources.SortModeAsc)
			} else {
				sortMode = string(queryParams.Sort.SortMode)
			}

			nextBookmark = fmt.Sprintf("off:%d;lim:%d;", limit+offset, limit)

			if queryParams.Sort.SortField != "" {
				sortBy = strings.ReplaceAll(queryParams.Sort.SortField, ".", "_")
				nextBookmark = nextBookmark + fmt.Sprintf("sortM:%s;sortB:%s;", sortMode, sortBy)
				tx = tx.Order(sortBy + " " + sortMode)
			}

			for _, filter := range queryParams.Filters {
				tx = FilterOperandToWhereClause(filter, tx)
				nextBookmark = nextBookmark + fmt.Sprintf("filter:%s-%d-%s;", base64.StdEncoding.EncodeToString([]byte(filter.Field)), filter.FilterOperation, base64.StdEncoding.EncodeToString([]byte(filter.Value)))
			}
		} else {
			nextBookmark = ""
			decodedBookmark, err := base64.RawURLEncoding.DecodeString(queryParams.NextBookmark)
			if err != nil {
				return "", fmt.Errorf("not a valid bookmark")
			}

			for _, splitPart := range strings.Split(string(decodedBookmark), ";") {
				queryPart := strings.Split(splitPart, ":")
				if len(queryPart) < 2 {
					continue
				}
				switch queryPart[0] {
				case "off":
					offset, err = strconv.Atoi(queryPart[1])
					if err != nil {
						return "", fmt.Errorf("not a valid bookmark")
					}
				case "lim":
					limit, err = strconv.Atoi(queryPart[1])
					if err != nil {
						return "", fmt.Errorf("not a valid bookmark")
					}
				case "sortM":
					sortMode = queryPart[1]
				case "sortB":
					sortBy = strings.ReplaceAll(queryPart[1], ".", "_")
				case "filter":
					filterSplit := strings.Split(queryPart[1], "-")
					if len(filterSplit) == 3 {
						field, err := base64.StdEncoding.DecodeString(filterSplit[0])
						if err != nil {
							continue
						}
						value, err := base64.StdEncoding.DecodeString(filterSplit[2])
						if err != nil {
							continue
						}

						operand, err := strconv.Atoi(filterSplit[1])
						if err != nil {
							continue
						}

						tx = FilterOperandToWhereClause(resources.FilterOption{
							Field:           string(field),
							FilterOperation: resources.FilterOperation(operand),
							Value:           string(value),
						}, tx)

						nextBookmark = nextBookmark + fmt.Sprintf("filter:%s-%d-%s;", filterSplit[0], operand, filterSplit[2])
					}
				}
			}

			if sortMode != "" && sortBy != "" {
				tx = tx.Order(sortBy + " " + sortMode)
			}

			nextBookmark = nextBookmark + fmt.Sprintf("off:%d;lim:%d;", offset+limit, limit)
			if sortMode != "" && sortBy != "" {
				nextBookmark = nextBookmark + fmt.Sprintf("sortM:%s;sortB:%s;", sortMode, sortBy)
			}
		}
	}

	tx = applyExtraOpts(tx, extraOpts)

	if exhaustiveRun {
		res := tx.WithContext(ctx).FindInBatches(&elems, limit, func(tx *gorm.DB, batch int) error {
			for _, elem := range elems {
				applyFunc(elem)
			}

			return nil
		})
		if res.Error != nil {
			return "", res.Error
		}

		return "", nil
	}

	tx.Offset(offset)
	tx.Limit(limit + 1)
	rs := tx.WithContext(ctx).Find(&elems)
	if rs.Error != nil {
		return "", rs.Error
	}

	hasMore := len(elems) > limit
	if hasMore {
		elems = elems[:limit]
	}

	for _, elem := range elems {
		applyFunc(elem)
	}

	if !hasMore {
		return "", nil
	}

	return base64.RawURLEncoding.EncodeToString([]byte(nextBookmark)), nil
}

// SelectExists finds the first element whose queryCol (or the primary key
// column when nil) equals queryID.
func (db *gormDBQuerier[E]) SelectExists(ctx context.Context, queryID string, queryCol *string) (bool, *E, error) {
	searchCol := db.primaryKeyColumn
	if queryCol != nil && *queryCol != "" {
		searchCol = *queryCol
	}

	var elem E
	tx := db.Table(db.tableName).WithContext(ctx).Limit(1).Find(&elem, fmt.Sprintf("%s = ?", searchCol), queryID)
	if tx.Error != nil {
		return false, nil, tx.Error
	}

	if tx.RowsAffected == 0 {
		return false, nil, nil
	}

	return true, &elem, nil
}

func (db *gormDBQuerier[E]) Insert(ctx context.Context, elem *E) (*E, error) {
	tx := db.Table(db.tableName).WithContext(ctx).Create(elem)
	if err := tx.Error; err != nil {
		return nil, err
	}

	return elem, nil
}

func (db *gormDBQuerier[E]) Update(ctx context.Context, elem *E, elemID string) (*E, error) {
	tx := db.Table(db.tableName).WithContext(ctx).Where(fmt.Sprintf("%s = ?", db.primaryKeyColumn), elemID).Save(elem)
	if err := tx.Error; err != nil {
		return nil, err
	}

	if tx.RowsAffected != 1 {
		return nil, gorm.ErrRecordNotFound
	}

	return elem, nil
}

func (db *gormDBQuerier[E]) Delete(ctx context.Context, elemID string) error {
	var elem E
	tx := db.Table(db.tableName).WithContext(ctx).Where(fmt.Sprintf("%s = ?", db.primaryKeyColumn), elemID).Delete(&elem)
	if err := tx.Error; err != nil {
		return err
	}

	if tx.RowsAffected != 1 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func FilterOperandToWhereClause(filter resources.FilterOption, tx *gorm.DB) *gorm.DB {
	if strings.Contains(filter.Field, ".") {
		filter.Field = strings.ReplaceAll(filter.Field, ".", "_")
	}

	switch filter.FilterOperation {
	case resources.StringEqual:
		return tx.Where(fmt.Sprintf("%s = ?", filter.Field), filter.Value)
	case resources.StringEqualIgnoreCase:
		return tx.Where(fmt.Sprintf("LOWER(%s) = LOWER(?)", filter.Field), filter.Value)
	case resources.StringNotEqual:
		return tx.Where(fmt.Sprintf("%s <> ?", filter.Field), filter.Value)
	case resources.StringNotEqualIgnoreCase:
		return tx.Where(fmt.Sprintf("LOWER(%s) <> LOWER(?)", filter.Field), filter.Value)
	case resources.StringContains:
		return tx.Where(fmt.Sprintf("%s LIKE ?", filter.Field), fmt.Sprintf("%%%s%%", filter.Value))
	case resources.StringContainsIgnoreCase:
		return tx.Where(fmt.Sprintf("LOWER(%s) LIKE LOWER(?)", filter.Field), fmt.Sprintf("%%%s%%", filter.Value))
	case resources.StringNotContains:
		return tx.Where(fmt.Sprintf("%s NOT LIKE ?", filter.Field), fmt.Sprintf("%%%s%%", filter.Value))
	case resources.StringNotContainsIgnoreCase:
		return tx.Where(fmt.Sprintf("LOWER(%s) NOT LIKE LOWER(?)", filter.Field), fmt.Sprintf("%%%s%%", filter.Value))
	case resources.StringArrayContains:
		return tx.Where(fmt.Sprintf("%s LIKE ?", filter.Field), fmt.Sprintf("%%%s%%", filter.Value))
	case resources.StringArrayContainsIgnoreCase:
		return tx.Where(fmt.Sprintf("LOWER(%s) LIKE LOWER(?)", filter.Field), fmt.Sprintf("%%%s%%", filter.Value))
	case resources.DateEqual:
		return tx.Where(fmt.Sprintf("%s = ?", filter.Field), filter.Value)
	case resources.DateBefore:
		return tx.Where(fmt.Sprintf("%s < ?", filter.Field), filter.Value)
	case resources.DateAfter:
		return tx.Where(fmt.Sprintf("%s > ?", filter.Field), filter.Value)
	case resources.NumberEqual:
		return tx.Where(fmt.Sprintf("%s = ?", filter.Field), filter.Value)
	case resources.NumberNotEqual:
		return tx.Where(fmt.Sprintf("%s <> ?", filter.Field), filter.Value)
	case resources.NumberLessThan:
		return tx.Where(fmt.Sprintf("%s < ?", filter.Field), filter.Value)
	case resources.NumberLessOrEqualThan:
		return tx.Where(fmt.Sprintf("%s <= ?", filter.Field), filter.Value)
	case resources.NumberGreaterThan:
		return tx.Where(fmt.Sprintf("%s > ?", filter.Field), filter.Value)
	case resources.NumberGreaterOrEqualThan:
		return tx.Where(fmt.Sprintf("%s >= ?", filter.Field), filter.Value)
	case resources.EnumEqual:
		return tx.Where(fmt.Sprintf("%s = ?", filter.Field), filter.Value)
	case resources.EnumNotEqual:
		return tx.Where(fmt.Sprintf("%s <> ?", filter.Field), filter.Value)
	default:
		return tx
	}
}

func NewGormLogger(logger *logrus.Entry) *GormLogger {
	return &GormLogger{
		logger: logger,
	}
}

// Logrus GORM iface implementation
type GormLogger struct {
	logger *logrus.Entry
}

func (l *GormLogger) LogMode(lvl gormlogger.LogLevel) gormlogger.Interface {
	newlogger := *l
	return &newlogger
}

func (l *GormLogger) Info(ctx context.Context, str string, rest ...interface{}) {
	le := helpers.ConfigureLogger(ctx, l.logger)
	le.Infof(str, rest...)
}

func (l *GormLogger) Warn(ctx context.Context, str string, rest ...interface{}) {
	le := helpers.ConfigureLogger(ctx, l.logger)
	le.Warnf(str, rest...)
}

func (l *GormLogger) Error(ctx context.Context, str string, rest ...interface{}) {
	le := helpers.ConfigureLogger(ctx, l.logger)
	le.Errorf(str, rest...)
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	le := helpers.ConfigureLogger(ctx, l.logger)
	sql, rows := fc()
	if err != nil {
		le.Errorf("Took: %s, Err:%s, SQL: %s, AffectedRows: %d", time.Since(begin).String(), err, sql, rows)
	} else {
		le.Tracef("Took: %s, SQL: %s, AffectedRows: %d", time.Since(begin).String(), sql, rows)
	}
}
