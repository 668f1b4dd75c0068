package ccpreno

// foldProgram is the datapath program Reno installs on every new flow. It
// tracks bytes acked since the last report, keeps an Ewma'd RTT estimate,
// and raises isUrgent on any reported loss so the driver sees a Measure
// immediately rather than waiting for the datapath's regular report
// interval.
const foldProgram = `
(def (Cwnd 10) (RttEst 0) (AckedBytes 0))
(bind isUrgent (> Loss 0))
(bind AckedBytes (+ AckedBytes Ack))
(bind RttEst (ewma 7 Rtt))
`
