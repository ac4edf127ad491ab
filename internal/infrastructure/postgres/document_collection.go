package postgres

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jhoicas/beanscene-api/internal/domain/repository"
	"github.com/jhoicas/beanscene-api/internal/infrastructure/codec"
)

var _ repository.Collection[struct{}] = (*DocumentCollection[struct{}])(nil)

// DocumentCollection implementa el puerto Collection sobre una tabla (id TEXT, seq BIGSERIAL, doc JSONB).
// El documento se guarda como Extended JSON relajado, con los mismos nombres de campo que en MongoDB.
// Los ordenamientos comparan el texto del campo con collation "C" (orden binario, igual que MongoDB para strings).
type DocumentCollection[T any] struct {
	q     Querier
	table string
}

// NewDocumentCollection construye la colección sobre la tabla indicada.
func NewDocumentCollection[T any](q Querier, table string) *DocumentCollection[T] {
	return &DocumentCollection[T]{q: q, table: pgx.Identifier{table}.Sanitize()}
}

// Find lista documentos por filtro de igualdad y orden opcional.
func (c *DocumentCollection[T]) Find(ctx context.Context, filter repository.Filter, sort ...repository.Sort) ([]*T, error) {
	var b strings.Builder
	b.WriteString("SELECT doc FROM ")
	b.WriteString(c.table)
	where, args := whereClause(filter, nil)
	b.WriteString(where)

	b.WriteString(" ORDER BY ")
	for _, s := range sort {
		args = append(args, s.Field)
		dir := "ASC"
		if s.Desc {
			dir = "DESC"
		}
		fmt.Fprintf(&b, `(doc->>($%d::text)) COLLATE "C" %s, `, len(args), dir)
	}
	b.WriteString("seq")

	rows, err := c.q.Query(ctx, b.String(), args...)
	if err != nil {
		return nil, wrapErr("find", c.table, err)
	}
	defer rows.Close()

	var list []*T
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, wrapErr("scan", c.table, err)
		}
		doc, err := c.decode(raw)
		if err != nil {
			return nil, err
		}
		list = append(list, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("find", c.table, err)
	}
	return list, nil
}

// FindOne devuelve el primer documento (en orden de inserción) o nil si no existe.
func (c *DocumentCollection[T]) FindOne(ctx context.Context, filter repository.Filter) (*T, error) {
	where, args := whereClause(filter, nil)
	query := "SELECT doc FROM " + c.table + where + " ORDER BY seq LIMIT 1"

	var raw []byte
	if err := c.q.QueryRow(ctx, query, args...).Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("find one", c.table, err)
	}
	return c.decode(raw)
}

// FindByID busca por id.
func (c *DocumentCollection[T]) FindByID(ctx context.Context, id primitive.ObjectID) (*T, error) {
	return c.FindOne(ctx, repository.ByID(id))
}

// InsertOne persiste el documento; el _id debe venir asignado.
func (c *DocumentCollection[T]) InsertOne(ctx context.Context, doc *T) error {
	raw, err := codec.Marshal(doc)
	if err != nil {
		return fmt.Errorf("codificar %s: %w", c.table, err)
	}
	idVal, err := bson.Raw(raw).LookupErr(repository.FieldID)
	if err != nil {
		return fmt.Errorf("insert %s: documento sin _id", c.table)
	}
	oid, ok := idVal.ObjectIDOK()
	if !ok {
		return fmt.Errorf("insert %s: _id no es ObjectID", c.table)
	}
	js, err := bson.MarshalExtJSON(bson.Raw(raw), false, false)
	if err != nil {
		return fmt.Errorf("codificar %s: %w", c.table, err)
	}

	query := "INSERT INTO " + c.table + " (id, doc) VALUES ($1, $2::jsonb)"
	if _, err := c.q.Exec(ctx, query, oid.Hex(), js); err != nil {
		return wrapErr("insert", c.table, err)
	}
	return nil
}

// UpdateByID sobrescribe los campos de primer nivel y reporta coincidencias y modificaciones
// en una sola sentencia: una fila que ya contiene los valores cuenta como coincidencia sin cambio.
func (c *DocumentCollection[T]) UpdateByID(ctx context.Context, id primitive.ObjectID, set repository.Fields) (repository.UpdateResult, error) {
	patch, err := codec.ToExtJSON(bson.M(set))
	if err != nil {
		return repository.UpdateResult{}, fmt.Errorf("codificar %s: %w", c.table, err)
	}

	query := `
		WITH target AS (
			SELECT id, doc FROM ` + c.table + ` WHERE id = $1 FOR UPDATE
		), changed AS (
			UPDATE ` + c.table + ` AS t SET doc = t.doc || $2::jsonb
			FROM target
			WHERE t.id = target.id AND NOT (target.doc @> $2::jsonb)
			RETURNING t.id
		)
		SELECT (SELECT count(*) FROM target), (SELECT count(*) FROM changed)`

	var res repository.UpdateResult
	if err := c.q.QueryRow(ctx, query, id.Hex(), patch).Scan(&res.Matched, &res.Modified); err != nil {
		return repository.UpdateResult{}, wrapErr("update", c.table, err)
	}
	return res, nil
}

// DeleteByID elimina por id y devuelve la cantidad eliminada (0 si no existía).
func (c *DocumentCollection[T]) DeleteByID(ctx context.Context, id primitive.ObjectID) (int64, error) {
	tag, err := c.q.Exec(ctx, "DELETE FROM "+c.table+" WHERE id = $1", id.Hex())
	if err != nil {
		return 0, wrapErr("delete", c.table, err)
	}
	return tag.RowsAffected(), nil
}

func (c *DocumentCollection[T]) decode(raw []byte) (*T, error) {
	var doc T
	if err := codec.FromExtJSON(raw, &doc); err != nil {
		return nil, fmt.Errorf("decodificar %s: %w", c.table, err)
	}
	return &doc, nil
}

// whereClause arma la condición de igualdad; las claves se ordenan para producir SQL estable.
func whereClause(filter repository.Filter, args []any) (string, []any) {
	if len(filter) == 0 {
		return "", args
	}
	keys := slices.Sorted(maps.Keys(filter))
	conds := make([]string, 0, len(keys))
	for _, k := range keys {
		v := textValue(filter[k])
		if k == repository.FieldID {
			args = append(args, v)
			conds = append(conds, fmt.Sprintf("id = $%d", len(args)))
			continue
		}
		args = append(args, k, v)
		conds = append(conds, fmt.Sprintf("doc->>($%d::text) = $%d", len(args)-1, len(args)))
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// textValue representación que devuelve el operador ->> para el valor.
func textValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case primitive.ObjectID:
		return t.Hex()
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}
