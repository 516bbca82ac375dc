/*
 * compose 包 - 算子链的类型检查与执行
 *
 * 概述：
 *   数据挖掘流程由算子（加载、预处理、学习、评估、可视化）组成有向的链式结构。
 *   compose 包在运行之前静态检查每个算子的输入输出类型是否衔接，
 *   检查通过后再按相同的规则在算子之间交接数据对象。
 *
 * 核心抽象：
 *
 *   1. Operator
 *      - 声明消费和产出的类型（schema.IOList）
 *      - CheckIO：给定可用类型，返回保证产出的类型，缺失时返回 IllegalInputError
 *      - 禁用的算子原样透传
 *
 *   2. OperatorChain
 *      - BaseOperator + Children + InnerOperatorCondition 的组合
 *      - 子算子个数上下界：不满足时返回 WrongNumberOfInnerOperatorsError
 *
 *   3. InnerOperatorCondition
 *      - SimpleChainCondition：首尾相接
 *      - AllInnerOperatorCondition：同构分支，返回最后一个子算子的结果
 *      - CombinedInnerOperatorCondition：子条件都接收原始输入，最后一个为准
 *      - LastInnerOperatorCondition / SpecificInnerOperatorCondition
 *
 *   4. Process
 *      - Check：检查并生成报告，触发 CheckCallback
 *      - Run：先检查再执行，子算子之间响应 ctx 取消
 *
 * 检查是单线程、同步、深度优先的树遍历，不做缓存，每次调用重新遍历。
 * 检查期间不要修改链和条件。
 */

package compose
