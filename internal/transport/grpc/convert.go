package grpc

import (
	"prizeledger/internal/model"
	pb "prizeledger/internal/proto"

	"github.com/shopspring/decimal"
)

func sessionReply(v *model.SessionView) *pb.SessionReply {
	return &pb.SessionReply{
		Success:        true,
		Code:           v.Code,
		CreditsLeft:    v.CreditsLeft,
		TotalWinnings:  v.TotalWinnings.String(),
		WagerRequired:  v.WagerRequired,
		WagerCompleted: v.WagerCompleted,
		Claimed:        v.Claimed,
		PayoutPending:  v.PayoutPending,
		Recovered:      v.Recovered,
	}
}

func sessionView(r *pb.SessionReply) (*model.SessionView, error) {
	winnings, err := parseAmount(r.GetTotalWinnings())
	if err != nil {
		return nil, err
	}
	return &model.SessionView{
		Code:           r.GetCode(),
		CreditsLeft:    r.GetCreditsLeft(),
		TotalWinnings:  winnings,
		WagerRequired:  r.GetWagerRequired(),
		WagerCompleted: r.GetWagerCompleted(),
		Claimed:        r.GetClaimed(),
		PayoutPending:  r.GetPayoutPending(),
		Recovered:      r.GetRecovered(),
	}, nil
}

func playRequest(req model.PlayRequest) *pb.PlayRequest {
	return &pb.PlayRequest{
		Code:      req.Code,
		AccountId: req.AccountID,
		GameId:    req.GameID,
		Bet:       req.Bet.String(),
		Target:    req.Params.Target.String(),
		Side:      req.Params.Side,
		Segments:  int32(req.Params.Segments),
		Pick:      int32(req.Params.Pick),
	}
}

func modelPlay(in *pb.PlayRequest) (model.PlayRequest, error) {
	bet, err := parseAmount(in.GetBet())
	if err != nil {
		return model.PlayRequest{}, model.NewError(model.CodeInvalidParams, "bet must be a decimal number")
	}
	target, err := parseAmount(in.GetTarget())
	if err != nil {
		return model.PlayRequest{}, model.NewError(model.CodeInvalidParams, "target must be a decimal number")
	}
	return model.PlayRequest{
		Code:      in.GetCode(),
		AccountID: in.GetAccountId(),
		GameID:    in.GetGameId(),
		Bet:       bet,
		Params: model.GameParams{
			Target:   target,
			Side:     in.GetSide(),
			Segments: int(in.GetSegments()),
			Pick:     int(in.GetPick()),
		},
	}, nil
}

// playReply sets Balance only for account plays; CreditsLeft only for code plays.
func playReply(res *model.PlayResult) *pb.PlayReply {
	out := &pb.PlayReply{
		Success:        true,
		PlayId:         res.PlayID,
		Prize:          res.Prize.String(),
		OutcomeDetail:  res.OutcomeDetail,
		TotalWinnings:  res.TotalWinnings.String(),
		WagerRequired:  res.WagerRequired.String(),
		WagerCompleted: res.WagerCompleted.String(),
		WagerMet:       res.WagerMet,
	}
	if res.CreditsLeft != nil {
		out.CreditsLeft = *res.CreditsLeft
	}
	if res.Balance != nil {
		out.Balance = res.Balance.String()
	}
	return out
}

func playResult(r *pb.PlayReply) (*model.PlayResult, error) {
	res := &model.PlayResult{
		PlayID:        r.GetPlayId(),
		OutcomeDetail: r.GetOutcomeDetail(),
		WagerMet:      r.GetWagerMet(),
	}
	var err error
	for _, f := range []struct {
		dst *decimal.Decimal
		src string
	}{
		{&res.Prize, r.GetPrize()},
		{&res.TotalWinnings, r.GetTotalWinnings()},
		{&res.WagerRequired, r.GetWagerRequired()},
		{&res.WagerCompleted, r.GetWagerCompleted()},
	} {
		if *f.dst, err = parseAmount(f.src); err != nil {
			return nil, err
		}
	}
	if r.GetBalance() != "" {
		balance, err := parseAmount(r.GetBalance())
		if err != nil {
			return nil, err
		}
		res.Balance = &balance
	} else {
		left := r.GetCreditsLeft()
		res.CreditsLeft = &left
	}
	return res, nil
}

func parseAmount(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}
