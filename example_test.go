package refbook_test

import (
	"errors"
	"fmt"

	"github.com/reglet-dev/refbook"
	"github.com/reglet-dev/refbook/domain/entities"
	rberrors "github.com/reglet-dev/refbook/domain/errors"
	"github.com/reglet-dev/refbook/infrastructure/enumerator"
)

type Notifier interface{ Notify(msg string) }

type Mailer struct{ sent int }

func (m *Mailer) Notify(string) { m.sent++ }

func Example() {
	book := refbook.New(refbook.WithInterfaces(enumerator.Interface[Notifier]()))

	mailer := &Mailer{}
	if err := book.AddWithCapabilities(mailer); err != nil {
		fmt.Println(err)
	}

	for _, n := range refbook.GetAll[Notifier](book) {
		n.Notify("deployed")
	}
	fmt.Println(mailer.sent)

	for _, k := range book.Keys() {
		fmt.Println(k)
	}

	err := book.Add(mailer)
	fmt.Println(errors.Is(err, rberrors.ErrDuplicate))
	// Output:
	// 1
	// interface:github.com/reglet-dev/refbook_test.Notifier
	// type:*github.com/reglet-dev/refbook_test.Mailer
	// true
}

func ExampleBook_AddAs() {
	book := refbook.New()
	primary := entities.Capability("db.primary")

	_ = book.AddAs(primary, "postgres://a")
	_ = book.AddAs(primary, "postgres://b")

	dsn, ok := refbook.GetAs[string](book, primary, 1)
	fmt.Println(dsn, ok)

	_, ok = book.TryGet(primary, 2)
	fmt.Println(ok)
	// Output:
	// postgres://b true
	// false
}
