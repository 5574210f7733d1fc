// internal/integrations/prestashop/customers.go
package prestashop

import (
	"context"
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"
)

const customerGroupID = "3" // "Customer" group on a stock install

var validate = validator.New()

type CustomerInput struct {
	Email     string `mapstructure:"email" validate:"required"`
	Firstname string `mapstructure:"firstname" validate:"required"`
	Lastname  string `mapstructure:"lastname" validate:"required"`
	Password  string `mapstructure:"password" validate:"required"`
	Active    bool   `mapstructure:"active"`
}

type CustomerUpdate struct {
	Email     *string `mapstructure:"email"`
	Firstname *string `mapstructure:"firstname"`
	Lastname  *string `mapstructure:"lastname"`
	Active    *bool   `mapstructure:"active"`
}

func checkEmail(email string) error {
	if err := validate.Var(email, "required,email"); err != nil {
		return fmt.Errorf("%w: invalid email %q", ErrInvalidInput, email)
	}
	return nil
}

func (c *Client) ListCustomers(ctx context.Context, limit int, email string) (Record, error) {
	q := listQuery(limit)
	q.Set("display", "[id,email,firstname,lastname,active,date_add]")
	if email != "" {
		q.Set("filter[email]", "["+email+"]%")
	}
	return c.get(ctx, "customers", q)
}

func (c *Client) CreateCustomer(ctx context.Context, in CustomerInput) (Record, error) {
	if err := checkEmail(in.Email); err != nil {
		return nil, err
	}
	if in.Firstname == "" || in.Lastname == "" {
		return nil, fmt.Errorf("%w: firstname and lastname are required", ErrInvalidInput)
	}
	if in.Password == "" {
		return nil, fmt.Errorf("%w: password is required", ErrInvalidInput)
	}

	cust := Record{
		"email":            in.Email,
		"firstname":        in.Firstname,
		"lastname":         in.Lastname,
		"passwd":           in.Password,
		"active":           boolFlag(in.Active),
		"id_default_group": customerGroupID,
		"id_lang":          strconv.Itoa(c.Languages().Primary()),
		"newsletter":       "0",
		"optin":            "0",
		"associations": Record{
			"groups": Record{
				"group": Record{"id": customerGroupID},
			},
		},
	}
	return c.post(ctx, "customers", Record{"customer": cust})
}

func (c *Client) UpdateCustomer(ctx context.Context, id string, u CustomerUpdate) (Record, error) {
	if u.Email != nil {
		if err := checkEmail(*u.Email); err != nil {
			return nil, err
		}
	}
	return c.patch(ctx, "customers", "customer", id, func(cust Record) error {
		if u.Email != nil {
			cust["email"] = *u.Email
		}
		if u.Firstname != nil {
			cust["firstname"] = *u.Firstname
		}
		if u.Lastname != nil {
			cust["lastname"] = *u.Lastname
		}
		if u.Active != nil {
			cust["active"] = boolFlag(*u.Active)
		}
		return nil
	})
}
