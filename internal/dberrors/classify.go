package dberrors

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"net"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
	"go.mongodb.org/mongo-driver/mongo"
)

var mysqlCodes = map[uint16]Code{
	1062: CodeDuplicateKey,
	1044: CodeAccessDenied,
	1045: CodeAccessDenied,
	1049: CodeUnknownDatabase,
	2002: CodeConnectionFailure,
	2003: CodeConnectionFailure,
	2006: CodeConnectionFailure,
	2013: CodeConnectionFailure,
	1054: CodeUnknownColumn,
	1146: CodeTableMissing,
	1213: CodeDeadlock,
	1366: CodeBadStringValue,
	1451: CodeForeignKeyParent,
	1452: CodeForeignKeyChild,
}

var postgresCodes = map[pq.ErrorCode]Code{
	"23505": CodeDuplicateKey,
	"28000": CodeAccessDenied,
	"28P01": CodeAccessDenied,
	"3D000": CodeUnknownDatabase,
	"57P03": CodeConnectionFailure,
	"42703": CodeUnknownColumn,
	"42P01": CodeTableMissing,
	"40P01": CodeDeadlock,
	"22021": CodeBadStringValue,
	"22P05": CodeBadStringValue,
}

const (
	pqForeignKeyViolation = pq.ErrorCode("23503")
	pqConnectionClass     = pq.ErrorClass("08")

	mongoUnauthorized         = 13
	mongoAuthenticationFailed = 18
	mongoWriteConflict        = 112
)

// MySQLCode maps a MySQL server or client error number to a canonical code.
func MySQLCode(number uint16) Code {
	if code, ok := mysqlCodes[number]; ok {
		return code
	}
	return CodeUnrecognized
}

// PostgresCode maps a SQLSTATE to a canonical code. detail disambiguates the two sides
// of a foreign key violation.
func PostgresCode(state pq.ErrorCode, detail string) Code {
	if state == pqForeignKeyViolation {
		if strings.Contains(detail, "still referenced") {
			return CodeForeignKeyParent
		}
		return CodeForeignKeyChild
	}
	if code, ok := postgresCodes[state]; ok {
		return code
	}
	if state.Class() == pqConnectionClass {
		return CodeConnectionFailure
	}
	return CodeUnrecognized
}

// CodeOf extracts the canonical code from a driver error.
func CodeOf(err error) Code {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return MySQLCode(myErr.Number)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return PostgresCode(pqErr.Code, pqErr.Detail)
	}

	if code, ok := mongoCode(err); ok {
		return code
	}

	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, mysql.ErrInvalidConn) || errors.Is(err, sql.ErrConnDone) {
		return CodeConnectionFailure
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return CodeConnectionFailure
	}

	return CodeUnrecognized
}

func mongoCode(err error) (Code, bool) {
	switch {
	case mongo.IsDuplicateKeyError(err):
		return CodeDuplicateKey, true
	case mongo.IsNetworkError(err), mongo.IsTimeout(err):
		return CodeConnectionFailure, true
	}

	var serverErr mongo.ServerError
	if errors.As(err, &serverErr) {
		switch {
		case serverErr.HasErrorCode(mongoUnauthorized), serverErr.HasErrorCode(mongoAuthenticationFailed):
			return CodeAccessDenied, true
		case serverErr.HasErrorCode(mongoWriteConflict):
			return CodeDeadlock, true
		}
	}
	return "", false
}

// Classify turns a storage failure raised while performing op on entity into a
// *PersistenceError. nil stays nil and already classified errors pass through unchanged.
func Classify(entity, op string, err error) error {
	if err == nil {
		return nil
	}

	var perr *PersistenceError
	if errors.As(err, &perr) {
		return err
	}

	return Translate(entity, op, CodeOf(err), err)
}
