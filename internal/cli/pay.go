package cli

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/aalvaropc/payflow/internal/domain"
)

type paymentFlags struct {
	name     string
	id       string
	email    string
	phone    string
	amount   string
	currency string
	typ      string
	source   string
}

func (pf *paymentFlags) register(cmd *cobra.Command, defaultType domain.PaymentType) {
	f := cmd.Flags()
	f.StringVar(&pf.name, "name", "", "Customer name")
	f.StringVar(&pf.id, "id", "", "Customer id")
	f.StringVar(&pf.email, "email", "", "Customer email")
	f.StringVar(&pf.phone, "phone", "", "Customer phone")
	f.StringVar(&pf.amount, "amount", "", "Amount, e.g. 100 or 12.50")
	f.StringVar(&pf.currency, "currency", "USD", "ISO currency code")
	f.StringVar(&pf.typ, "type", string(defaultType), "Payment type: card|local|offline|recurring")
	f.StringVar(&pf.source, "source", "", "Card token or payment source")
}

func (pf *paymentFlags) build() (domain.CustomerData, domain.PaymentData, error) {
	customer, err := domain.NewCustomerData(pf.name, pf.id, domain.ContactInfo{Email: pf.email, Phone: pf.phone})
	if err != nil {
		return domain.CustomerData{}, domain.PaymentData{}, err
	}

	raw := strings.TrimSpace(pf.amount)
	if raw == "" {
		return domain.CustomerData{}, domain.PaymentData{}, invalidFlag("amount", "is required")
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return domain.CustomerData{}, domain.PaymentData{}, invalidFlag("amount", fmt.Sprintf("%q is not a number", raw))
	}

	typ, err := domain.ParsePaymentType(pf.typ)
	if err != nil {
		return domain.CustomerData{}, domain.PaymentData{}, err
	}

	payment, err := domain.NewPaymentData(amount, pf.currency, typ, pf.source)
	if err != nil {
		return domain.CustomerData{}, domain.PaymentData{}, err
	}
	return customer, payment, nil
}

func invalidFlag(name, msg string) error {
	return &domain.OpError{
		Op:   "cli.flags",
		Kind: domain.KindInvalidData,
		Path: "--" + name,
		Err:  fmt.Errorf("--%s %s: %w", name, msg, domain.ErrInvalidData),
	}
}

func payCmd(flags *rootFlags) *cobra.Command {
	pf := &paymentFlags{}
	cmd := &cobra.Command{
		Use:   "pay",
		Short: "Process a single payment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkFormat(flags.format); err != nil {
				return err
			}
			customer, payment, err := pf.build()
			if err != nil {
				return err
			}

			ws, err := loadWorkspace(flags.workspace)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			rt, err := ws.wire(ctx, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer rt.Close()

			resp, err := rt.Service.ProcessTransaction(ctx, customer, payment)
			return finishResponse(cmd, resp, err, flags.format)
		},
	}
	pf.register(cmd, domain.PaymentCard)
	return cmd
}

func refundCmd(flags *rootFlags) *cobra.Command {
	pf := &paymentFlags{}
	var txID string
	cmd := &cobra.Command{
		Use:   "refund",
		Short: "Refund a previous transaction through the processor that handled it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkFormat(flags.format); err != nil {
				return err
			}
			if strings.TrimSpace(txID) == "" {
				return invalidFlag("transaction", "is required")
			}
			customer, payment, err := pf.build()
			if err != nil {
				return err
			}

			ws, err := loadWorkspace(flags.workspace)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			rt, err := ws.wire(ctx, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer rt.Close()

			resp, err := rt.Service.Refund(ctx, customer, payment, strings.TrimSpace(txID))
			return finishResponse(cmd, resp, err, flags.format)
		},
	}
	pf.register(cmd, domain.PaymentCard)
	cmd.Flags().StringVar(&txID, "transaction", "", "Transaction id to refund")
	return cmd
}

func subscribeCmd(flags *rootFlags) *cobra.Command {
	pf := &paymentFlags{}
	cmd := &cobra.Command{
		Use:   "subscribe",
		Short: "Start a recurring payment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkFormat(flags.format); err != nil {
				return err
			}
			customer, payment, err := pf.build()
			if err != nil {
				return err
			}

			ws, err := loadWorkspace(flags.workspace)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			rt, err := ws.wire(ctx, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer rt.Close()

			resp, err := rt.Service.StartRecurring(ctx, customer, payment)
			return finishResponse(cmd, resp, err, flags.format)
		},
	}
	pf.register(cmd, domain.PaymentRecurring)
	return cmd
}

// finishResponse prints resp whenever the processor produced one, so a charge
// followed by a notification or trace failure still shows its transaction id.
func finishResponse(cmd *cobra.Command, resp domain.PaymentResponse, err error, format string) error {
	if err != nil && resp.TransactionID == "" {
		return err
	}
	if perr := printResponse(cmd.OutOrStdout(), resp, format); perr != nil {
		return perr
	}
	if err != nil {
		return err
	}
	if !resp.Success {
		return fmt.Errorf("payment declined: %s", resp.Message)
	}
	return nil
}
