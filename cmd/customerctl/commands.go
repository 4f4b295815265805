package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/jhoicas/Customers-api/internal/application/composer"
	"github.com/jhoicas/Customers-api/internal/application/dto"
	"github.com/jhoicas/Customers-api/internal/domain"
	"github.com/jhoicas/Customers-api/internal/domain/entity"
	"github.com/jhoicas/Customers-api/internal/infrastructure/restclient"
	"github.com/jhoicas/Customers-api/internal/presentation"
	"github.com/jhoicas/Customers-api/pkg/config"
	"github.com/jhoicas/Customers-api/pkg/logger"
)

const usage = `uso: customerctl [-api URL] [-token JWT] [-rollback] <comando> [flags] [id]

comandos:
  list   [-search texto]
  get    <id>
  add    -name N [-email E] [-document D] [-phone P] [-status S]
  update <id> [-name N] [-email E] [-document D] [-phone P] [-status S]
  delete <id>
  login  -email E -password P
`

// app estado de una invocación.
type app struct {
	client *restclient.Client
	comp   *composer.Composer
	store  *presentation.CustomerListStore
	out    io.Writer
}

// run ejecuta la línea de comandos y devuelve el código de salida.
func run(ctx context.Context, cfg config.ClientConfig, args []string, stdout, stderr io.Writer, log *logger.Logger) int {
	fs := flag.NewFlagSet("customerctl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { fmt.Fprint(stderr, usage) }
	apiURL := fs.String("api", cfg.APIURL, "URL base de la API")
	token := fs.String("token", cfg.Token, "Bearer token")
	rollback := fs.Bool("rollback", false, "baja optimista con reinserción si el backend falla")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}

	client := restclient.New(restclient.Config{BaseURL: *apiURL, Timeout: cfg.Timeout, Token: *token}, log)
	comp := composer.New(client, nil, log)
	policy := presentation.ConfirmThenApply
	if *rollback {
		policy = presentation.OptimisticWithRollback
	}
	a := &app{
		client: client,
		comp:   comp,
		store:  presentation.NewCustomerListStore(presentation.FromComposer(comp), policy, log),
		out:    stdout,
	}

	cmd, rest := fs.Arg(0), fs.Args()[1:]
	var err error
	switch cmd {
	case "list":
		err = a.list(ctx, rest, stderr)
	case "get":
		err = a.get(ctx, rest, stderr)
	case "add":
		err = a.add(ctx, rest, stderr)
	case "update":
		err = a.update(ctx, rest, stderr)
	case "delete":
		err = a.delete(ctx, rest, stderr)
	case "login":
		err = a.login(ctx, rest, stderr)
	default:
		fmt.Fprintf(stderr, "comando desconocido %q\n", cmd)
		fs.Usage()
		return 2
	}
	if err != nil {
		if errors.Is(err, errUsage) {
			return 2
		}
		fmt.Fprintln(stderr, describe(err))
		return 1
	}
	return 0
}

var errUsage = errors.New("uso incorrecto")

func (a *app) list(ctx context.Context, args []string, stderr io.Writer) error {
	fs := subFlags("list", stderr)
	search := fs.String("search", "", "filtra por nombre, email o documento")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := a.store.Search(ctx, *search); err != nil {
		return err
	}
	a.printTable(a.store.Customers())
	fmt.Fprintln(a.out, a.store.Summary())
	return nil
}

func (a *app) get(ctx context.Context, args []string, stderr io.Writer) error {
	id, rest := splitID(args)
	if err := parse(subFlags("get", stderr), rest); err != nil {
		return err
	}
	if id == "" {
		fmt.Fprintln(stderr, "get: falta <id>")
		return errUsage
	}
	c, err := a.comp.MakeGetCustomerUseCase().Execute(ctx, id)
	if err != nil {
		return err
	}
	a.printDetail(*c)
	return nil
}

func (a *app) add(ctx context.Context, args []string, stderr io.Writer) error {
	fs := subFlags("add", stderr)
	f := customerFlags(fs)
	status := fs.String("status", string(entity.StatusActive), "ACTIVE, INACTIVE, WAITING_FOR_ACTIVATION o DISABLED")
	if err := parse(fs, args); err != nil {
		return err
	}
	out, err := a.store.Add(ctx, dto.AddCustomerRequest{
		Name:     *f.name,
		Email:    *f.email,
		Document: entity.FormatDocument(*f.document),
		Phone:    entity.FormatPhone(*f.phone),
		Status:   *status,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "cliente creado: %s\n", out.ID)
	return nil
}

func (a *app) update(ctx context.Context, args []string, stderr io.Writer) error {
	id, rest := splitID(args)
	fs := subFlags("update", stderr)
	customerFlags(fs)
	status := fs.String("status", "", "nuevo estado")
	if err := parse(fs, rest); err != nil {
		return err
	}
	if id == "" {
		id = fs.Arg(0)
	}
	if id == "" {
		fmt.Fprintln(stderr, "update: falta <id>")
		return errUsage
	}

	var in dto.UpdateCustomerRequest
	fs.Visit(func(fl *flag.Flag) {
		v := fl.Value.String()
		switch fl.Name {
		case "name":
			in.Name = &v
		case "email":
			in.Email = &v
		case "document":
			v = entity.FormatDocument(v)
			in.Document = &v
		case "phone":
			v = entity.FormatPhone(v)
			in.Phone = &v
		case "status":
			in.Status = status
		}
	})
	if err := a.store.Update(ctx, id, in); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "cliente actualizado: %s\n", id)
	return nil
}

func (a *app) delete(ctx context.Context, args []string, stderr io.Writer) error {
	id, rest := splitID(args)
	if err := parse(subFlags("delete", stderr), rest); err != nil {
		return err
	}
	if id == "" {
		fmt.Fprintln(stderr, "delete: falta <id>")
		return errUsage
	}
	if a.store.Policy() == presentation.OptimisticWithRollback {
		if err := a.store.Load(ctx); err != nil {
			return err
		}
	}
	if err := a.store.Delete(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "cliente eliminado: %s\n", id)
	return nil
}

func (a *app) login(ctx context.Context, args []string, stderr io.Writer) error {
	fs := subFlags("login", stderr)
	email := fs.String("email", "", "email del operador")
	password := fs.String("password", "", "contraseña")
	if err := parse(fs, args); err != nil {
		return err
	}
	if *email == "" || *password == "" {
		fmt.Fprintln(stderr, "login: -email y -password son requeridos")
		return errUsage
	}
	out, err := a.client.Login(ctx, *email, *password)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "sesión iniciada como %s (%s)\n", out.User.Email, out.User.Role)
	fmt.Fprintf(a.out, "export CLIENT_TOKEN=%s\n", out.Token)
	return nil
}

type fieldFlags struct {
	name, email, document, phone *string
}

func customerFlags(fs *flag.FlagSet) fieldFlags {
	return fieldFlags{
		name:     fs.String("name", "", "nombre"),
		email:    fs.String("email", "", "email"),
		document: fs.String("document", "", "documento (dígitos o ya formateado)"),
		phone:    fs.String("phone", "", "teléfono (dígitos o ya formateado)"),
	}
}

func subFlags(name string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	return fs
}

func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	return nil
}

// splitID separa un id posicional al inicio (update <id> -name X).
func splitID(args []string) (string, []string) {
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		return args[0], args[1:]
	}
	return "", args
}

func (a *app) printTable(list []dto.CustomerResponse) {
	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNOMBRE\tEMAIL\tDOCUMENTO\tTELÉFONO\tESTADO")
	for _, c := range list {
		badge := presentation.BadgeFor(entity.CustomerStatus(c.Status))
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", c.ID, c.Name, c.Email, c.Document, c.Phone, badge.Label)
	}
	_ = tw.Flush()
}

func (a *app) printDetail(c dto.CustomerResponse) {
	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	badge := presentation.BadgeFor(entity.CustomerStatus(c.Status))
	fmt.Fprintf(tw, "ID\t%s\n", c.ID)
	fmt.Fprintf(tw, "Nombre\t%s\n", c.Name)
	fmt.Fprintf(tw, "Email\t%s\n", c.Email)
	fmt.Fprintf(tw, "Documento\t%s\n", c.Document)
	fmt.Fprintf(tw, "Teléfono\t%s\n", c.Phone)
	fmt.Fprintf(tw, "Estado\t%s (%s)\n", badge.Label, badge.Color)
	_ = tw.Flush()
}

// describe traduce el error a un mensaje para el operador.
func describe(err error) string {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		return "datos inválidos: " + ve.Error()
	case errors.Is(err, domain.ErrNotFound):
		return "cliente no encontrado"
	case errors.Is(err, domain.ErrUnauthorized):
		return "no autorizado: ejecute login o pase -token"
	case errors.Is(err, domain.ErrForbidden):
		return "su rol no permite esta operación"
	case errors.Is(err, domain.ErrUnavailable):
		return "la API no está disponible, intente más tarde"
	}
	return "error: " + err.Error()
}
