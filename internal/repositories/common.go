package repositories

import (
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	intconfig "wedding/internal/config"
	"wedding/internal/domain"
)

const mysqlDuplicateEntry = 1062

func pick(db *sqlx.DB) (*sqlx.DB, error) {
	if db != nil {
		return db, nil
	}
	if intconfig.DB != nil {
		return intconfig.DB, nil
	}
	return nil, domain.InternalError{Msg: "database not connected"}
}

func isDuplicate(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlDuplicateEntry
}
